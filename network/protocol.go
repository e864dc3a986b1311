package network

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/config"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/render"
)

// MessageType identifies the semantic meaning of a server message
type MessageType string

const (
	MsgHello  MessageType = "hello"  // Session id and slot, sent once
	MsgFrame  MessageType = "frame"  // Render projection
	MsgResult MessageType = "result" // Reply to a command, echoes its seq
	MsgEvent  MessageType = "event"  // Game event notification
)

// Command is a client request; Op selects the operation and the other
// fields are its arguments
type Command struct {
	Seq    uint32  `json:"seq" msgpack:"seq"`
	Op     string  `json:"op" msgpack:"op"`
	ID     string  `json:"id,omitempty" msgpack:"id,omitempty"`
	Kind   string  `json:"kind,omitempty" msgpack:"kind,omitempty"`
	X      float64 `json:"x,omitempty" msgpack:"x,omitempty"`
	Y      float64 `json:"y,omitempty" msgpack:"y,omitempty"`
	Inside bool    `json:"inside,omitempty" msgpack:"inside,omitempty"`
	Amount float64 `json:"amount,omitempty" msgpack:"amount,omitempty"`
	Index  int     `json:"index,omitempty" msgpack:"index,omitempty"`
}

// Hello greets a new connection
type Hello struct {
	Session string `json:"session" msgpack:"session"`
	Slot    string `json:"slot" msgpack:"slot"`
	Resumed bool   `json:"resumed" msgpack:"resumed"`
}

// Result answers one command
type Result struct {
	OK    bool   `json:"ok" msgpack:"ok"`
	Error string `json:"error,omitempty" msgpack:"error,omitempty"`
	Data  any    `json:"data,omitempty" msgpack:"data,omitempty"`
}

// Notice forwards a game event
type Notice struct {
	Name    string `json:"name" msgpack:"name"`
	Payload any    `json:"payload,omitempty" msgpack:"payload,omitempty"`
}

// Message is the envelope of everything the server sends
type Message struct {
	Type   MessageType   `json:"type" msgpack:"type"`
	Seq    uint32        `json:"seq,omitempty" msgpack:"seq,omitempty"`
	Hello  *Hello        `json:"hello,omitempty" msgpack:"hello,omitempty"`
	Frame  *render.Frame `json:"frame,omitempty" msgpack:"frame,omitempty"`
	Result *Result       `json:"result,omitempty" msgpack:"result,omitempty"`
	Event  *Notice       `json:"event,omitempty" msgpack:"event,omitempty"`
}

// ErrUnknownCodec is returned by CodecFor
var ErrUnknownCodec = errors.New("unknown codec")

// Codec encodes messages for one websocket frame type
type Codec interface {
	Name() string
	// FrameType is websocket.TextMessage or websocket.BinaryMessage
	FrameType() int
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return config.CodecJSON }
func (jsonCodec) FrameType() int                     { return websocket.TextMessage }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                       { return config.CodecMsgpack }
func (msgpackCodec) FrameType() int                     { return websocket.BinaryMessage }
func (msgpackCodec) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// CodecFor returns the codec registered under name
func CodecFor(name string) (Codec, error) {
	switch name {
	case config.CodecJSON, "":
		return jsonCodec{}, nil
	case config.CodecMsgpack:
		return msgpackCodec{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// DecodeCommand reads a client frame; text frames are JSON, binary frames msgpack
func DecodeCommand(frameType int, data []byte) (Command, error) {
	var cmd Command
	var err error
	if frameType == websocket.BinaryMessage {
		err = msgpack.Unmarshal(data, &cmd)
	} else {
		err = json.Unmarshal(data, &cmd)
	}
	if err != nil {
		return cmd, fmt.Errorf("decode command: %w", err)
	}
	if cmd.Op == "" {
		return cmd, errors.New("decode command: missing op")
	}
	return cmd, nil
}
