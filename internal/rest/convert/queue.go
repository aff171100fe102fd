package convert

import (
	"github.com/sweeplabs/modsweep/internal/database/types"
	restTypes "github.com/sweeplabs/modsweep/internal/rest/types"
)

// QueueItem converts a database queue item to its review view.
func QueueItem(item *types.QueueItem) restTypes.QueueItemView {
	return restTypes.QueueItemView{
		ID:          item.ID,
		CommentID:   item.PlatformCommentID,
		ContentID:   item.ContentID,
		AuthorName:  item.AuthorName,
		Text:        item.Text,
		Status:      item.Status.String(),
		DetectedAt:  item.DetectedAt,
		PublishedAt: item.PublishedAt,
	}
}

// QueueItems converts a slice of database queue items.
func QueueItems(items []*types.QueueItem) []restTypes.QueueItemView {
	views := make([]restTypes.QueueItemView, 0, len(items))
	for _, item := range items {
		views = append(views, QueueItem(item))
	}

	return views
}
