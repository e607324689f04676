package websocket

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
)

const (
	actionConnect  = "connect"
	actionGameNew  = "game:new"
	actionGameJoin = "game:join"
	actionGameTurn = "game:turn"
)

const (
	opContinuation byte = 0x0
	opText         byte = 0x1
	opClose        byte = 0x8
	opPing         byte = 0x9
	opPong         byte = 0xa
)

// maxPayloadSize bounds a single client frame.
const maxPayloadSize = 1 << 16

var ErrPayloadTooLarge = errors.New("frame payload too large")

// frame represents a WebSocket frame and its metadata.
type frame struct {
	isFin   bool
	opCode  byte
	length  uint64
	payload []byte
}

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player   *entity.Player          `json:"player,omitempty"`
	Game     *entity.Game            `json:"game,omitempty"`
	Action   *hexapawn.PlayerAction  `json:"action,omitempty"`
	Actions  []hexapawn.PlayerAction `json:"actions,omitempty"`
	Rendered string                  `json:"rendered,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

func gamePayload(player *entity.Player, game *entity.Game) Payload {
	return Payload{
		Player:   player,
		Game:     game,
		Actions:  game.Actions(),
		Rendered: game.State.String(),
	}
}

func (that *Server) sendMessage(conn *connection, action string, payload Payload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	responseBytes, err := json.Marshal(Message{
		Action:  action,
		Payload: payloadBytes,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	f := frame{
		isFin:   true,
		opCode:  opText,
		length:  uint64(len(responseBytes)),
		payload: responseBytes,
	}

	if err = conn.writeFrame(f); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *connection, action, message string) error {
	return that.sendMessage(conn, action, Payload{Error: message})
}

func writeFrame(w *bufio.Writer, frameData frame) error {
	header := []byte{frameData.opCode, 0}

	if frameData.isFin {
		header[0] |= 0x80
	}

	switch {
	case frameData.length < 126:
		header[1] = byte(frameData.length)
	case frameData.length < 1<<16:
		header[1] = 126
		header = binary.BigEndian.AppendUint16(header, uint16(frameData.length))
	default:
		header[1] = 127
		header = binary.BigEndian.AppendUint64(header, frameData.length)
	}

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write frame header: %w", err)
	}

	if _, err := w.Write(frameData.payload); err != nil {
		return fmt.Errorf("failed to write frame payload: %w", err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	return nil
}

// readRequest - reads one client frame, unmasked. A close frame yields io.EOF.
func readRequest(r *bufio.Reader) (frame, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(r, header); err != nil {
		return frame{}, fmt.Errorf("failed to read header: %w", err)
	}

	opCode := header[0] & 0x0f
	maskBit := header[1] >> 7

	size, err := readPayloadLength(r, header[1]&0x7f)
	if err != nil {
		return frame{}, err
	}

	if size > maxPayloadSize {
		return frame{}, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, size)
	}

	mask, err := readMask(r, maskBit)
	if err != nil {
		return frame{}, err
	}

	payload, err := readData(r, size, mask)
	if err != nil {
		return frame{}, err
	}

	if opCode == opClose {
		return frame{}, io.EOF
	}

	return frame{
		isFin:   header[0]>>7 == 1,
		opCode:  opCode,
		length:  size,
		payload: payload,
	}, nil
}

// isMessage reports whether f carries a complete JSON message. Fragmented
// messages are not reassembled.
func (f frame) isMessage() bool {
	return f.opCode == opText && f.isFin
}

// pong echoes the payload of a ping.
func (f frame) pong() frame {
	return frame{
		isFin:   true,
		opCode:  opPong,
		length:  f.length,
		payload: f.payload,
	}
}

func readPayloadLength(r *bufio.Reader, payloadLen byte) (uint64, error) {
	if payloadLen < 126 {
		return uint64(payloadLen), nil
	}

	if payloadLen == 126 {
		length := make([]byte, 2)
		if _, err := io.ReadFull(r, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}
		return uint64(binary.BigEndian.Uint16(length)), nil
	}

	length := make([]byte, 8)
	if _, err := io.ReadFull(r, length); err != nil {
		return 0, fmt.Errorf("failed to read payload length: %w", err)
	}

	return binary.BigEndian.Uint64(length), nil
}

func readMask(r *bufio.Reader, maskBit byte) ([]byte, error) {
	if maskBit == 0 {
		return nil, nil
	}

	mask := make([]byte, 4)
	if _, err := io.ReadFull(r, mask); err != nil {
		return nil, fmt.Errorf("failed to read mask: %w", err)
	}

	return mask, nil
}

func readData(r *bufio.Reader, size uint64, mask []byte) ([]byte, error) {
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	if mask != nil {
		for i := range payload {
			payload[i] ^= mask[i%4]
		}
	}

	return payload, nil
}
