package slack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/contribmap/pkg/domain/types"
	contribslack "github.com/m-mizutani/contribmap/pkg/infra/slack"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"
)

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		kind    types.EventKind
		payload any
		want    string
		wantErr bool
	}{
		{
			name: "push with several commits",
			kind: types.EventKindPush,
			payload: &model.PushEvent{
				Sender:     model.PushSender{Login: "alice"},
				Commits:    []model.Commit{{ID: "1"}, {ID: "2"}},
				Repository: model.PushRepository{FullName: "org/repo"},
			},
			want: "*alice* pushed 2 commits to <https://github.com/org/repo|org/repo>",
		},
		{
			name: "push with one commit",
			kind: types.EventKindPush,
			payload: &model.PushEvent{
				Sender:     model.PushSender{Login: "bob"},
				Commits:    []model.Commit{{ID: "1"}},
				Repository: model.PushRepository{FullName: "a/b"},
			},
			want: "*bob* pushed 1 commit to <https://github.com/a/b|a/b>",
		},
		{
			name:    "project approved",
			kind:    types.EventKindProjectApproved,
			payload: &model.ProjectEvent{ProjectUser: "u", ProjectName: "p"},
			want:    "Project <https://github.com/u/p|u/p> by *u* has been approved",
		},
		{
			name:    "unsupported payload",
			kind:    types.EventKindPush,
			payload: "raw",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := contribslack.Text(tt.kind, tt.payload)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestNotifier_Notify(t *testing.T) {
	var gotChannel, gotText string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, r.ParseForm())
		gotChannel = r.Form.Get("channel")
		gotText = r.Form.Get("text")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "channel": gotChannel, "ts": "1700000000.000100"})
	}))
	defer ts.Close()

	n := contribslack.New("xoxb-test", "C0123", slack.OptionAPIURL(ts.URL+"/"))
	err := n.Notify(context.Background(), types.EventKindProjectSubmitted, &model.ProjectEvent{
		ProjectUser: "u", ProjectName: "p",
	})
	gt.NoError(t, err)
	gt.Value(t, gotChannel).Equal("C0123")
	gt.String(t, gotText).Contains("submitted a new project")
}

func TestNotifier_Notify_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "channel_not_found"})
	}))
	defer ts.Close()

	n := contribslack.New("xoxb-test", "C0123", slack.OptionAPIURL(ts.URL+"/"))
	err := n.Notify(context.Background(), types.EventKindPush, &model.PushEvent{})
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to post slack message")
}
