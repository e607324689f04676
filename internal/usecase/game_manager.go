package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/hexapawn-backend/internal/apperror"
	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
	"github.com/rocketscienceinc/hexapawn-backend/internal/pkg"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager seats players in hexapawn games and plays their turns. The
// creator of a game plays Max, the player who joins plays Min.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo

	newID func() string
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,

		newID: pkg.GenerateGameID,
	}
}

// MakeTurn - plays action for the player in gameID.
func (that *GameManager) MakeTurn(ctx context.Context, gameID, playerID string, action hexapawn.PlayerAction) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "playerID", playerID)

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if !player.InGame() || player.GameID != gameID {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrNotInGame, gameID)
	}

	game, err := that.gameRepo.Update(ctx, player.GameID, func(game *entity.Game) error {
		return game.MakeTurn(player.Side, action)
	})
	if err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	log.Debug("turn played", "gameID", game.ID, "action", action.String())

	if game.IsFinished() {
		that.releasePlayers(ctx, game)
		log.Info("game finished", "gameID", game.ID, "winner", game.Winner)
	}

	return game, nil
}

// ConnectToGame - seats the player as Min in a waiting game. A player still
// waiting for an opponent elsewhere gives up that game, a player in an ongoing
// one is rejected.
func (that *GameManager) ConnectToGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == gameID {
		return that.getGameByID(ctx, gameID)
	}

	abandoned, err := that.abandonableGame(ctx, player)
	if err != nil {
		return nil, err
	}

	player.GameID = gameID
	player.Side = hexapawn.Min.String()

	existingGame, err := that.gameRepo.Update(ctx, gameID, func(game *entity.Game) error {
		if game.IsFull() || !game.IsWaiting() {
			return fmt.Errorf("%w: game id %s", apperror.ErrGameFull, gameID)
		}

		game.Status = entity.StatusOngoing
		game.Players = append(game.Players, player)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed join game: %w", err)
	}

	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed update player by id: %w", err)
	}

	if abandoned != "" {
		if err = that.gameRepo.DeleteByID(ctx, abandoned); err != nil && !errors.Is(err, apperror.ErrNotFound) {
			that.logger.Error("failed to delete abandoned game", "gameID", abandoned, "error", err)
		}
	}

	that.logger.Info("player joined game", "gameID", existingGame.ID, "playerID", player.ID)

	return existingGame, nil
}

// abandonableGame - id of the game the player leaves by joining another one,
// empty when there is nothing to clean up. Only a game still waiting for an
// opponent can be left.
func (that *GameManager) abandonableGame(ctx context.Context, player *entity.Player) (string, error) {
	if !player.InGame() {
		return "", nil
	}

	current, err := that.gameRepo.GetByID(ctx, player.GameID)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("failed get current game: %w", err)
	case current.IsWaiting():
		return current.ID, nil
	case current.IsFinished():
		return "", nil
	default:
		return "", fmt.Errorf("%w: game id %s", apperror.ErrAlreadyInGame, current.ID)
	}
}

// GetOrCreateGame - returns the player's current game, or opens a new one with the player as Max.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if !player.InGame() {
		newGame, err := that.createGame(ctx, player)
		if err != nil {
			return nil, fmt.Errorf("failed create game: %w", err)
		}

		return newGame, nil
	}

	existingGame, err := that.getGameByID(ctx, player.GameID)
	if errors.Is(err, apperror.ErrNotFound) {
		that.logger.Info("current game expired", "gameID", player.GameID, "playerID", player.ID)
		return that.createGame(ctx, player)
	}

	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.getGameByID(ctx, gameID)
}

// GetActions - legal actions for the side to move in the game.
func (that *GameManager) GetActions(ctx context.Context, gameID string) ([]hexapawn.PlayerAction, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return game.Actions(), nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	newGame := entity.NewGame(that.newID())

	player.GameID = newGame.ID
	player.Side = hexapawn.Max.String()

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed update player: %w", err)
	}

	newGame.Players = []*entity.Player{player}

	if err := that.gameRepo.CreateOrUpdate(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", newGame.ID, "playerID", player.ID)

	return newGame, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

// releasePlayers frees the players of a finished game so they can start another.
// The finished game itself stays readable until it expires.
func (that *GameManager) releasePlayers(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "releasePlayers", "gameID", game.ID)

	for _, player := range game.Players {
		released := &entity.Player{ID: player.ID}

		if err := that.playerRepo.CreateOrUpdate(ctx, released); err != nil {
			log.Error("failed to update player", "playerID", player.ID, "error", err)
		}
	}
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id %w", err)
	}

	return player, nil
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
