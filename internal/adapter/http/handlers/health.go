package handlers

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"boardsync/internal/adapter/http/middleware"
	"boardsync/internal/core/ports"
)

const (
	StatusOk   = "ok"
	StatusDown = "down"
)

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	EventChannel string `json:"event_channel"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	ActiveGroup       string         `json:"active_group,omitempty"`
	LastSyncAt        string         `json:"last_sync_at,omitempty"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	reader ports.BoardReader
}

func NewHealthHandler(reader ports.BoardReader) *HealthHandler {
	return &HealthHandler{reader: reader}
}

// CheckHealth reports liveness. The process stays healthy while the event
// channel is down: the engine keeps operating in poll-on-demand mode, so a
// dead channel shows up in the body, not in the status code.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	message := StatusOk
	if !h.reader.Status().ChannelConnected {
		message = StatusDown
	}

	c.JSON(200, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	status := h.reader.Status()

	channelStatus := StatusDown
	if status.ChannelConnected {
		channelStatus = StatusOk
	}

	report := HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		ActiveGroup:       status.ActiveGroupID,
		Status: HealthServices{
			EventChannel: channelStatus,
		},
	}
	if !status.LastSyncAt.IsZero() {
		report.LastSyncAt = status.LastSyncAt.Format(time.RFC3339)
	}

	c.JSON(200, report)
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
