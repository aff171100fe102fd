package enum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
)

func TestFilterActionOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action enum.FilterAction
		log    enum.LogAction
		costed bool
	}{
		{enum.FilterActionDelete, enum.LogActionDeleted, true},
		{enum.FilterActionHide, enum.LogActionHidden, true},
		{enum.FilterActionFlag, enum.LogActionFlagged, true},
		{enum.FilterActionReport, enum.LogActionReported, false},
		{enum.FilterAction(99), enum.LogActionFailed, false},
	}

	for _, tt := range tests {
		logAction, costed := tt.action.Outcome()
		assert.Equal(t, tt.log, logAction, "action %d", tt.action)
		assert.Equal(t, tt.costed, costed, "action %d", tt.action)
	}
}
