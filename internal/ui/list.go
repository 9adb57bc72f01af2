package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/cratedig/internal/models"
)

var _ list.Item = recordItem{}

// recordItem wraps [models.PlaylistRecord] to implement [list.Item].
type recordItem struct {
	record models.PlaylistRecord
}

func (i recordItem) FilterValue() string { return i.record.PlaylistName }
func (i recordItem) Title() string       { return i.record.PlaylistName }
func (i recordItem) Description() string {
	desc := fmt.Sprintf("%d songs", i.record.NumSongs)
	if i.record.Query != "" {
		desc = fmt.Sprintf("%s • %q", desc, i.record.Query)
	}
	return desc
}
