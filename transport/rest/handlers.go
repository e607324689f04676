package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/hexapawn-backend/internal/apperror"
	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreatePlayer(w http.ResponseWriter, r *http.Request)
	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	JoinGame(w http.ResponseWriter, r *http.Request)
	GetActions(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
}

type gameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error)
	ConnectToGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	GetActions(ctx context.Context, gameID string) ([]hexapawn.PlayerAction, error)
	MakeTurn(ctx context.Context, gameID, playerID string, action hexapawn.PlayerAction) (*entity.Game, error)
}

type handlers struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func NewHandlers(logger *slog.Logger, gameUseCase gameUseCase) Handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

type playerRequest struct {
	PlayerID string `json:"player_id"`
}

type turnRequest struct {
	PlayerID string                `json:"player_id"`
	Action   hexapawn.PlayerAction `json:"action"`
}

// gameResponse adds the derived fields of a game to its stored form.
type gameResponse struct {
	*entity.Game
	Turn     string                  `json:"turn,omitempty"`
	Terminal bool                    `json:"terminal"`
	Vector   []int8                  `json:"vector"`
	Actions  []hexapawn.PlayerAction `json:"actions"`
	Rendered string                  `json:"rendered"`
}

func newGameResponse(game *entity.Game) gameResponse {
	actions := game.Actions()
	if actions == nil {
		actions = []hexapawn.PlayerAction{}
	}

	return gameResponse{
		Game:     game,
		Turn:     game.Turn(),
		Terminal: game.State.IsTerminal(),
		Vector:   game.State.ToVector(),
		Actions:  actions,
		Rendered: game.State.String(),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	player, err := that.gameUseCase.GetOrCreatePlayer(r.Context(), "")
	if err != nil {
		that.writeError(w, "CreatePlayer", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, player)
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "player_id is required"})
		return
	}

	game, err := that.gameUseCase.GetOrCreateGame(r.Context(), req.PlayerID)
	if err != nil {
		that.writeError(w, "CreateGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *handlers) JoinGame(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "player_id is required"})
		return
	}

	game, err := that.gameUseCase.ConnectToGame(r.Context(), r.PathValue("id"), req.PlayerID)
	if err != nil {
		that.writeError(w, "JoinGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *handlers) GetActions(w http.ResponseWriter, r *http.Request) {
	actions, err := that.gameUseCase.GetActions(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "GetActions", err)
		return
	}

	if actions == nil {
		actions = []hexapawn.PlayerAction{}
	}

	that.writeJSON(w, http.StatusOK, actions)
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid turn request: " + err.Error()})
		return
	}

	if req.PlayerID == "" {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "player_id is required"})
		return
	}

	game, err := that.gameUseCase.MakeTurn(r.Context(), r.PathValue("id"), req.PlayerID, req.Action)
	if err != nil {
		that.writeError(w, "MakeTurn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFull),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameIsNotStarted),
		errors.Is(err, apperror.ErrNotInGame),
		errors.Is(err, apperror.ErrAlreadyInGame),
		errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, hexapawn.ErrIllegalAction),
		errors.Is(err, hexapawn.ErrOutOfBounds),
		errors.Is(err, hexapawn.ErrNotYourPiece),
		errors.Is(err, hexapawn.ErrUnknownAction),
		errors.Is(err, hexapawn.ErrUnknownPlayer):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
