package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestPopupHandler_List(t *testing.T) {
	app := newTestApp(t)
	handler := newEventServer(t, app, "")

	gt.NoError(t, app.hub.AddPopup(context.Background(), &model.PopupMessage{Lat: 1, Lon: 2, Msg: "<p>a</p>"}))
	gt.NoError(t, app.hub.AddPopup(context.Background(), &model.PopupMessage{Lat: 3, Lon: 4, Msg: "<p>b</p>"}))

	req := httptest.NewRequest(http.MethodGet, "/popups", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	gt.Number(t, w.Code).Equal(http.StatusOK)

	var records []model.PopupRecord
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&records))
	gt.Number(t, len(records)).Equal(2)
	gt.Value(t, records[0].Popup.Msg).Equal("<p>a</p>")
	gt.Value(t, records[1].Popup.Msg).Equal("<p>b</p>")
}

func TestPopupHandler_Stream(t *testing.T) {
	app := newTestApp(t)
	ts := httptest.NewServer(newEventServer(t, app, ""))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/popups/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	gt.NoError(t, err)
	defer conn.Close()
	_ = resp.Body.Close()

	// wait until the server side has subscribed
	deadline := time.Now().Add(time.Second)
	for app.hub.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("stream did not subscribe")
		}
		time.Sleep(5 * time.Millisecond)
	}

	gt.NoError(t, app.notification.HandleProjectApproved(context.Background(), &model.ProjectEvent{
		ProjectAuthor: 1, ProjectUser: "testuser", ProjectName: "plugin",
	}))

	gt.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var rec model.PopupRecord
	gt.NoError(t, conn.ReadJSON(&rec))
	gt.Number(t, rec.Popup.Lat).Equal(10)
	gt.String(t, rec.Popup.Msg).Contains("testuser/plugin")
}
