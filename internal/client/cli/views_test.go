package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/legalchicks/lcen-portal/internal/client/models"
	"github.com/legalchicks/lcen-portal/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestFilterDirectory(t *testing.T) {
	members := []models.User{aliceUser, hiddenUser, adminUser}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"everyone public", "", []string{"2", "1"}},
		{"by name", "alice", []string{"2"}},
		{"case insensitive email", "LEGALCHICKS", []string{"1"}},
		{"trimmed", "  johnson ", []string{"2"}},
		{"private never listed", "bob", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, m := range filterDirectory(members, tt.term) {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestPrintMembers_Empty(t *testing.T) {
	var buf bytes.Buffer
	printMembers(&buf, nil)
	assert.Equal(t, "No members found.\n", buf.String())
}

func TestPrintNotifications_MarksUnread(t *testing.T) {
	var buf bytes.Buffer
	printNotifications(&buf, []models.Notification{
		{ID: "7", Type: models.NotificationWarning, Title: "Low feed", Timestamp: time.Now()},
		{ID: "8", Type: models.NotificationInfo, Title: "Old news", Timestamp: time.Now(), Read: true},
	})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if assert.Len(t, lines, 3) {
		assert.True(t, bytes.HasPrefix(lines[1], []byte("*")))
		assert.False(t, bytes.HasPrefix(lines[2], []byte("*")))
	}
}

func TestPrintUser(t *testing.T) {
	var buf bytes.Buffer
	printUser(&buf, &models.User{ID: "4", Name: "Dana", Email: "d@x.io", Role: common.RoleMember, Visibility: common.VisibilityPrivate})
	assert.Contains(t, buf.String(), "Dana")
	assert.Contains(t, buf.String(), "private")
}
