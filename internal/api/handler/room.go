package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"

	"github.com/scoula/omok-server/internal/api/request"
	"github.com/scoula/omok-server/internal/api/response"
	"github.com/scoula/omok-server/internal/directory"
	"github.com/scoula/omok-server/internal/dispatch"
	"github.com/scoula/omok-server/internal/model"
	"github.com/scoula/omok-server/internal/registry"
	"github.com/scoula/omok-server/internal/ws"
)

// RoomHandler handles room-related endpoints
type RoomHandler struct {
	registry   *registry.Registry
	directory  directory.Directory
	hub        *ws.Hub
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(
	reg *registry.Registry,
	dir directory.Directory,
	hub *ws.Hub,
	dispatcher *dispatch.Dispatcher,
	logger *slog.Logger,
) *RoomHandler {
	return &RoomHandler{
		registry:   reg,
		directory:  dir,
		hub:        hub,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteError(w, NewInvalidRequestError("Title is required"))
		return
	}

	room := h.registry.CreateRoom(r.Context(), req.Title)
	h.hub.GetOrCreateTopic(room.ID)

	response.JSON(w, http.StatusCreated, response.RoomFromModel(room))
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	infos, err := h.directory.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	// Newest rooms first
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})

	listings := make([]response.RoomListing, 0, len(infos))
	for _, info := range infos {
		listings = append(listings, response.ListingFromInfo(info))
	}
	response.JSON(w, http.StatusOK, response.RoomList{Rooms: listings})
}

// Get handles GET /api/v1/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.RoomID(mux.Vars(r)["id"])

	room, ok := h.registry.GetRoom(id)
	if !ok {
		WriteError(w, model.ErrRoomNotFound)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomFromModel(room))
}

// Join handles POST /api/v1/rooms/{id}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	id := model.RoomID(mux.Vars(r)["id"])

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.PlayerID == "" || req.PlayerName == "" {
		WriteError(w, NewInvalidRequestError("player_id and player_name are required"))
		return
	}

	player := model.Player{ID: model.PlayerID(req.PlayerID), Name: req.PlayerName}
	if !h.registry.JoinRoom(r.Context(), id, player) {
		// Join fails when the room is absent or full; look it up to tell
		if _, ok := h.registry.GetRoom(id); !ok {
			WriteError(w, model.ErrRoomNotFound)
		} else {
			WriteError(w, model.ErrRoomFull)
		}
		return
	}

	room, ok := h.registry.GetRoom(id)
	if !ok {
		WriteError(w, model.ErrRoomNotFound)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomFromModel(room))
}

// Leave handles POST /api/v1/rooms/{id}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	id := model.RoomID(mux.Vars(r)["id"])

	var req request.LeaveRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	if _, ok := h.registry.GetRoom(id); !ok {
		WriteError(w, model.ErrRoomNotFound)
		return
	}
	// The dispatcher drops the room's topic if this leave destroyed it
	if !h.dispatcher.Leave(r.Context(), id, model.PlayerID(req.PlayerID)) {
		WriteError(w, model.ErrNotInRoom)
		return
	}
	response.NoContent(w)
}

// Socket handles GET /ws/rooms/{id}, upgrading to a websocket subscription
// on the room's topic
func (h *RoomHandler) Socket(w http.ResponseWriter, r *http.Request) {
	id := model.RoomID(mux.Vars(r)["id"])

	if _, ok := h.registry.GetRoom(id); !ok {
		WriteError(w, model.ErrRoomNotFound)
		return
	}

	topic := h.hub.GetOrCreateTopic(id)
	ws.ServeWS(w, r, topic, h.dispatcher, h.logger)
}
