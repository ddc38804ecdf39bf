// Command feedwatch connects to the feed stream and prints every event.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fachnmchi/internal/middleware"
	"fachnmchi/internal/notifications"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "API host:port")
	clientID := flag.String("client", "feedwatch", "Client id sent with the connection")
	flag.Parse()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/api/ws/feed"}
	header := http.Header{}
	header.Set(middleware.ClientIDHeader, *clientID)

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		if resp != nil {
			log.Fatalf("dial %s: %v (HTTP %d)", u.String(), err, resp.StatusCode)
		}
		log.Fatalf("dial %s: %v", u.String(), err)
	}
	defer conn.Close()
	log.Printf("connected to %s", u.String())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.Printf("read: %v", err)
				}
				return
			}
			ev, err := notifications.DecodeFeedEvent(msg)
			if err != nil {
				log.Printf("undecodable message: %s", msg)
				continue
			}
			printEvent(ev)
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func printEvent(ev notifications.FeedEvent) {
	line := fmt.Sprintf("%s v%d %s", ev.At.Format(time.TimeOnly), ev.Version, ev.Type)
	if ev.Post != nil {
		line += fmt.Sprintf(" #%s likes=%d pinned=%v shared=%v %q",
			ev.Post.ID, ev.Post.Likes, ev.Post.IsPinned, ev.Post.IsShared, ev.Post.Question)
	}
	fmt.Println(line)
}
