package stt

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecognizerServer(t *testing.T, handler func(conn *websocket.Conn)) *recognizerClient {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(srv.Close)

	return &recognizerClient{
		url:              strings.Replace(srv.URL, "http", "ws", 1),
		handshakeTimeout: 2 * time.Second,
		writeTimeout:     2 * time.Second,
	}
}

func TestStreamReceivesEvents(t *testing.T) {
	client := newRecognizerServer(t, func(conn *websocket.Conn) {
		conn.WriteJSON(Event{Type: EventReady})
		conn.WriteJSON(Event{Type: EventPartial, Text: "agregar man"})
		conn.WriteJSON(Event{Type: EventFinal, Text: "agregar manzanas"})
	})

	stream, err := client.NewStream()
	require.NoError(t, err)
	defer stream.Close()

	var types []string
	var finalText string
	for ev := range stream.Events() {
		if ev.Type == EventError {
			break
		}
		types = append(types, ev.Type)
		if ev.Type == EventFinal {
			finalText = ev.Text
			break
		}
	}

	assert.Equal(t, []string{EventReady, EventPartial, EventFinal}, types)
	assert.Equal(t, "agregar manzanas", finalText)
}

func TestFinishSendsEOF(t *testing.T) {
	received := make(chan string, 1)

	client := newRecognizerServer(t, func(conn *websocket.Conn) {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		received <- string(message)
	})

	stream, err := client.NewStream()
	require.NoError(t, err)
	defer stream.Close()

	require.NoError(t, stream.Finish())

	select {
	case msg := <-received:
		assert.JSONEq(t, `{"eof":1}`, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("recognizer never received the eof message")
	}
}

func TestSendAudioAfterClose(t *testing.T) {
	client := newRecognizerServer(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
	})

	stream, err := client.NewStream()
	require.NoError(t, err)

	stream.Close()
	assert.ErrorIs(t, stream.SendAudio([]byte{0x00, 0x01}), ErrNotConnected)
}

func TestCloseReleasesReadLoop(t *testing.T) {
	client := newRecognizerServer(t, func(conn *websocket.Conn) {
		for i := 0; i < 100; i++ {
			if err := conn.WriteJSON(Event{Type: EventPartial, Text: "hola"}); err != nil {
				return
			}
		}
	})

	stream, err := client.NewStream()
	require.NoError(t, err)

	// Flood far more events than the buffer holds with nobody draining,
	// then close. The events channel must still wind down.
	time.Sleep(200 * time.Millisecond)
	stream.Close()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-stream.Events():
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("events channel never closed after Close")
		}
	}
}

func TestNewStreamConnectionRefused(t *testing.T) {
	client := &recognizerClient{
		url:              "ws://127.0.0.1:1/ws/reconocimiento",
		handshakeTimeout: 500 * time.Millisecond,
		writeTimeout:     500 * time.Millisecond,
	}

	_, err := client.NewStream()
	assert.Error(t, err)
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, "Servicio de voz no disponible", classifyError(errors.New("dial tcp: connection refused")))
	assert.Equal(t, "El servicio de voz no responde", classifyError(errors.New("i/o timeout")))
	assert.Equal(t, "Error de conexión con el servicio de voz", classifyError(errors.New("boom")))
}
