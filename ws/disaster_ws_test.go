package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ilhamriadi/projects.co.id/access"
	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/services"
	"github.com/ilhamriadi/projects.co.id/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server, map[string]entity.Actor) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	actors := map[string]entity.Actor{
		"sintang":  {ID: "k1", Role: entity.RoleDistrict, District: "Sintang"},
		"dedai":    {ID: "k2", Role: entity.RoleDistrict, District: "Dedai"},
		"stranger": {ID: "x", Role: "admin"},
	}
	r := gin.New()
	r.GET("/ws/:who", func(c *gin.Context) {
		utils.SetActor(c, actors[c.Param("who")])
		c.Next()
	}, hub.HandleWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv, actors
}

func dial(t *testing.T, srv *httptest.Server, who string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + who
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// hello arrives only after the client is registered
	var hello map[string]string
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, "connected", hello["event"])
	return conn
}

func TestPublishReachesScopedRoomOnly(t *testing.T) {
	hub, srv, _ := startHub(t)
	sintang := dial(t, srv, "sintang")
	dedai := dial(t, srv, "dedai")
	assert.Equal(t, 1, hub.Subscribers("district:Sintang"))

	d := &entity.Disaster{ID: "d1", District: "Sintang", Village: "Kelam"}
	hub.Publish(services.DisasterEvent{Event: services.EventDisasterCreated, Disaster: d},
		access.RoomsFor(d.District, d.Village)...)

	_ = sintang.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got struct {
		Event    string          `json:"event"`
		Disaster json.RawMessage `json:"disaster"`
	}
	require.NoError(t, sintang.ReadJSON(&got))
	assert.Equal(t, services.EventDisasterCreated, got.Event)
	assert.Contains(t, string(got.Disaster), `"id":"d1"`)

	_ = dedai.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := dedai.ReadMessage()
	assert.Error(t, err, "other districts must not receive the event")
}

func TestUnscopedActorCannotSubscribe(t *testing.T) {
	_, srv, _ := startHub(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/stranger"
	_, res, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 403, res.StatusCode)
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub() // Run not started: nothing drains the queue
	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastQueue*2; i++ {
			hub.Publish(services.DisasterEvent{Event: services.EventDisasterUpdated}, access.AgencyRoom)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
}
