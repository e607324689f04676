package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	that.register(player.ID, conn)

	log.Info("successfully connected player", "playerID", player.ID)

	return that.sendMessage(conn, msg.Action, Payload{Player: player})
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := that.requirePlayer(msg, conn)
	if err != nil || payloadReq == nil {
		return err
	}

	game, err := that.gameUseCase.GetOrCreateGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to create or get game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new game")
	}

	return that.notifyPlayers(msg.Action, game)
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleJoinGame")

	payloadReq, err := that.requirePlayer(msg, conn)
	if err != nil || payloadReq == nil {
		return err
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		return that.sendErrorResponse(conn, msg.Action, "Game is required")
	}

	game, err := that.gameUseCase.ConnectToGame(ctx, payloadReq.Game.ID, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to join game", "gameID", payloadReq.Game.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	return that.notifyPlayers(msg.Action, game)
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := that.requirePlayer(msg, conn)
	if err != nil || payloadReq == nil {
		return err
	}

	if payloadReq.Game == nil || payloadReq.Action == nil {
		return that.sendErrorResponse(conn, msg.Action, "Game and Action are required")
	}

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Game.ID, payloadReq.Player.ID, *payloadReq.Action)
	if err != nil {
		log.Warn("turn rejected", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	return that.notifyPlayers(msg.Action, game)
}

// requirePlayer - decodes the payload and binds the sending player to conn. A
// nil payload with a nil error means an error response was already sent.
func (that *Server) requirePlayer(msg *Message, conn *connection) (*Payload, error) {
	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	if payloadReq.Player == nil || payloadReq.Player.ID == "" {
		return nil, that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	that.register(payloadReq.Player.ID, conn)

	return &payloadReq, nil
}

// notifyPlayers - pushes the game to every connected player seated in it.
func (that *Server) notifyPlayers(action string, game *entity.Game) error {
	log := that.logger.With("method", "notifyPlayers", "gameID", game.ID)

	for _, player := range game.Players {
		that.connectionsMutex.RLock()
		conn, ok := that.connections[player.ID]
		that.connectionsMutex.RUnlock()

		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		if err := that.sendMessage(conn, action, gamePayload(player, game)); err != nil {
			log.Error("failed to notify player", "playerID", player.ID, "error", err)
		}
	}

	return nil
}
