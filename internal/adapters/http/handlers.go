package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkeye/greenroom/internal/app"
	"github.com/dkeye/greenroom/internal/domain"
)

type JoinRequest struct {
	UserID      string `json:"user_id"`
	RoomCode    string `json:"room_code"`
	DisplayName string `json:"display_name"`
}

type JoinResponse struct {
	Message string               `json:"message"`
	Code    app.Code             `json:"code"`
	Room    domain.RoomName      `json:"room,omitempty"`
	Role    domain.Role          `json:"role,omitempty"`
	Members []domain.Participant `json:"members,omitempty"`
}

type StatusResponse struct {
	Message string           `json:"message"`
	Version string           `json:"version"`
	Rooms   []app.RoomStatus `json:"rooms"`
}

func handleJoin(adm *app.Admission) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		out := adm.Join(req.RoomCode, req.UserID, req.DisplayName)
		resp := JoinResponse{
			Message: out.Message,
			Code:    out.Code,
			Room:    out.Room,
			Role:    out.Member.Role,
			Members: out.Roster,
		}
		c.JSON(statusFor(out.Code), resp)
	}
}

func statusFor(code app.Code) int {
	switch code {
	case app.CodeJoined:
		return http.StatusOK
	case app.CodeInvalidRequest:
		return http.StatusBadRequest
	case app.CodeDuplicateMember, app.CodeRoleFull:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func handleStatus(agg *app.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := agg.Snapshot()
		c.JSON(http.StatusOK, StatusResponse{
			Message: snap.Describe(),
			Version: snap.Version,
			Rooms:   snap.Rooms,
		})
	}
}
