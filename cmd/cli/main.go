package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gorilla/websocket"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "clab",
		Usage: "play a room on a clab server from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Value:   "ws://localhost:5555/ws",
				Usage:   "websocket URL of the server",
				EnvVars: []string{"CLAB_SERVER"},
			},
		},
		Action: func(c *cli.Context) error {
			return play(c.String("server"), os.Stdin)
		},
	}

	if err := app.Run(os.Args); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func play(url string, in io.Reader) error {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("could not connect to %s: %w", url, err)
	}
	defer ws.Close()

	s := &session{}
	closed := make(chan struct{})
	go listen(ws, s, closed)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-closed:
			return errors.New("server closed the connection")

		case line, ok := <-lines:
			if !ok {
				return hangUp(ws)
			}
			msg, err := s.parse(line)
			if errors.Is(err, errQuit) {
				return hangUp(ws)
			}
			if err != nil {
				pterm.Warning.Println(err)
				continue
			}
			if err := ws.WriteJSON(msg); err != nil {
				return err
			}
		}
	}
}

func listen(ws *websocket.Conn, s *session, closed chan<- struct{}) {
	defer close(closed)

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var msg wireMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			pterm.Warning.Printfln("unreadable message: %s", data)
			continue
		}
		if err := s.observe(msg); err != nil {
			pterm.Warning.Printfln("unreadable %s: %v", msg.Message, err)
		}
		show(describe(msg))
		pterm.Print(s.prompt())
	}
}

func hangUp(ws *websocket.Conn) error {
	return ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
