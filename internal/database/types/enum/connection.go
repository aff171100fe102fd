package enum

// ConnectionMode describes how a connection talks to its platform.
//
//go:generate go tool enumer -type=ConnectionMode -trimprefix=ConnectionMode -transform=snake -text
type ConnectionMode int

const (
	// ConnectionModeAPI uses the platform's official API with stored credentials.
	ConnectionModeAPI ConnectionMode = iota
	// ConnectionModeAgent delegates scraping and actions to the browser agent.
	ConnectionModeAgent
)

// ScanMode controls how much history a scan walks through.
//
//go:generate go tool enumer -type=ScanMode -trimprefix=ScanMode -transform=snake -text
type ScanMode int

const (
	// ScanModeIncremental stops at the last seen comment per content item.
	ScanModeIncremental ScanMode = iota
	// ScanModeFull re-walks every fetched comment regardless of checkpoints.
	ScanModeFull
	// ScanModeManual only scans when explicitly requested by the owner.
	ScanModeManual
)
