package websocket

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/hexapawn-backend/internal/apperror"
	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGameUseCase struct {
	mock.Mock
}

func (m *mockGameUseCase) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	args := m.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

func (m *mockGameUseCase) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	args := m.Called(ctx, playerID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockGameUseCase) ConnectToGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	args := m.Called(ctx, gameID, playerID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockGameUseCase) MakeTurn(ctx context.Context, gameID, playerID string, action hexapawn.PlayerAction) (*entity.Game, error) {
	args := m.Called(ctx, gameID, playerID, action)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

// session feeds client messages to the server and collects its replies.
func session(t *testing.T, useCase *mockGameUseCase, messages ...Message) []Message {
	t.Helper()

	var in bytes.Buffer
	for _, msg := range messages {
		data, err := json.Marshal(msg)
		require.NoError(t, err)
		in.Write(clientFrame(opText, data))
	}

	var replies []Message
	for _, f := range exchange(t, useCase, io.Discard, in.Bytes()) {
		var reply Message
		require.NoError(t, json.Unmarshal(f.payload, &reply))
		replies = append(replies, reply)
	}

	return replies
}

// exchange feeds raw client frames to the server and returns the frames it wrote back.
func exchange(t *testing.T, useCase *mockGameUseCase, logOutput io.Writer, in []byte) []frame {
	t.Helper()

	var out bytes.Buffer
	conn := &connection{rw: bufio.NewReadWriter(bufio.NewReader(bytes.NewReader(in)), bufio.NewWriter(&out))}

	server := New(slog.New(slog.NewTextHandler(logOutput, nil)), useCase)
	err := server.handleMessages(context.Background(), conn)
	require.ErrorIs(t, err, io.EOF)

	var frames []frame
	reader := bufio.NewReader(&out)
	for {
		f, err := readRequest(reader)
		if err != nil {
			break
		}

		frames = append(frames, f)
	}

	return frames
}

func decodePayload(t *testing.T, msg Message) Payload {
	t.Helper()

	var payload Payload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))

	return payload
}

func TestServer_HandleMessages(t *testing.T) {
	t.Run("Connect creates a player", func(t *testing.T) {
		// Given
		useCase := &mockGameUseCase{}
		useCase.On("GetOrCreatePlayer", mock.Anything, "").Return(&entity.Player{ID: "p1"}, nil).Once()

		// When
		replies := session(t, useCase, Message{Action: actionConnect})

		// Then
		require.Len(t, replies, 1)
		assert.Equal(t, actionConnect, replies[0].Action)
		assert.Equal(t, "p1", decodePayload(t, replies[0]).Player.ID)
		useCase.AssertExpectations(t)
	})

	t.Run("Turn is pushed to the seated player", func(t *testing.T) {
		// Given: a game where p1 plays Max
		useCase := &mockGameUseCase{}
		game := entity.NewGame("g1")
		game.Status = entity.StatusOngoing
		game.Players = []*entity.Player{{ID: "p1", Side: "Max", GameID: "g1"}}
		action := hexapawn.PlayerAction{Kind: hexapawn.Advance, Src: hexapawn.Location{Row: 0, Col: 1}}

		useCase.On("MakeTurn", mock.Anything, "g1", "p1", action).Return(game, nil).Once()

		payload, err := json.Marshal(Payload{Player: &entity.Player{ID: "p1"}, Game: &entity.Game{ID: "g1"}, Action: &action})
		require.NoError(t, err)

		// When
		replies := session(t, useCase, Message{Action: actionGameTurn, Payload: payload})

		// Then
		require.Len(t, replies, 1)
		reply := decodePayload(t, replies[0])
		assert.Equal(t, "g1", reply.Game.ID)
		assert.Len(t, reply.Actions, 3)
		assert.Contains(t, reply.Rendered, "Next Player: Max")
		useCase.AssertExpectations(t)
	})

	t.Run("Rejected turn returns an error", func(t *testing.T) {
		useCase := &mockGameUseCase{}
		action := hexapawn.PlayerAction{Kind: hexapawn.Advance, Src: hexapawn.Location{Row: 2, Col: 1}}
		useCase.On("MakeTurn", mock.Anything, "g1", "p1", action).Return(nil, apperror.ErrNotYourTurn).Once()

		payload, err := json.Marshal(Payload{Player: &entity.Player{ID: "p1"}, Game: &entity.Game{ID: "g1"}, Action: &action})
		require.NoError(t, err)

		replies := session(t, useCase, Message{Action: actionGameTurn, Payload: payload})

		require.Len(t, replies, 1)
		assert.Equal(t, apperror.ErrNotYourTurn.Error(), decodePayload(t, replies[0]).Error)
	})

	t.Run("Missing player", func(t *testing.T) {
		replies := session(t, &mockGameUseCase{}, Message{Action: actionGameNew, Payload: json.RawMessage(`{}`)})

		require.Len(t, replies, 1)
		assert.Equal(t, "Player is required", decodePayload(t, replies[0]).Error)
	})

	t.Run("Unknown action", func(t *testing.T) {
		replies := session(t, &mockGameUseCase{}, Message{Action: "game:resign"})

		require.Len(t, replies, 1)
		assert.Equal(t, "unknown action", decodePayload(t, replies[0]).Error)
	})

	t.Run("Ping is answered with a pong", func(t *testing.T) {
		// When: the client pings
		frames := exchange(t, &mockGameUseCase{}, io.Discard, clientFrame(opPing, []byte("hi")))

		// Then: the same payload comes back in a pong
		require.Len(t, frames, 1)
		assert.Equal(t, opPong, frames[0].opCode)
		assert.True(t, frames[0].isFin)
		assert.Equal(t, []byte("hi"), frames[0].payload)
	})

	t.Run("Control and continuation frames are not parsed as messages", func(t *testing.T) {
		// Given: a pong and a continuation frame followed by a real message
		useCase := &mockGameUseCase{}
		useCase.On("GetOrCreatePlayer", mock.Anything, "").Return(&entity.Player{ID: "p1"}, nil).Once()

		var in bytes.Buffer
		in.Write(clientFrame(opPong, []byte("late")))
		in.Write(clientFrame(opContinuation, []byte("tail")))
		in.Write(clientFrame(opText, []byte(`{"action":"connect"}`)))

		var logs bytes.Buffer

		// When
		frames := exchange(t, useCase, &logs, in.Bytes())

		// Then: only the message is answered and nothing failed to unmarshal
		require.Len(t, frames, 1)
		assert.Equal(t, opText, frames[0].opCode)
		assert.NotContains(t, logs.String(), "failed to unmarshal")
		useCase.AssertExpectations(t)
	})
}
