// Command simpeer acts as a fake flight-simulator peer against a running
// simbridge server. It connects to the bridge socket, reports the simulator
// as connected, and answers the bridge's request/Status/ping envelopes with
// canned data. Useful for exercising the bridge end to end without a real
// simulator attached.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v3"

	"github.com/aerolink/simbridge/sim/protocol"
)

func main() {
	cmd := &cli.Command{
		Name:  "simpeer",
		Usage: "act as a fake flight-simulator peer against a simbridge server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Value: "ws://localhost:8080/ws",
				Usage: "bridge socket URL",
			},
			&cli.StringFlag{
				Name:  "name",
				Value: "MSFS",
				Usage: "simulator name to report",
			},
			&cli.Float64Flag{
				Name:  "altitude",
				Value: 2200,
				Usage: "altitude reported in aircraft data frames",
			},
			&cli.DurationFlag{
				Name:  "stream",
				Value: 0,
				Usage: "when set, stream aircraft data at this interval without waiting for requests",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// client wraps the bridge connection with a write lock. The read loop's
// reply path and the streaming goroutine share the connection, and gorilla
// allows only one concurrent writer.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) writeEnvelope(env protocol.Envelope) error {
	raw, err := protocol.Encode(env)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, raw)
}

func run(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	url := cmd.String("url")
	name := cmd.String("name")
	altitude := cmd.Float64("altitude")
	streamInterval := cmd.Duration("stream")

	log.Printf("Connecting to %s as %q...", url, name)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Println("Connected")

	c := &client{conn: conn}

	// Announce the simulator as up before anything else, the way a real
	// simulator-side client does on attach.
	if err := c.writeEnvelope(statusEnvelope(name)); err != nil {
		return err
	}

	if streamInterval > 0 {
		go streamAircraftData(ctx, c, altitude, streamInterval)
	}

	// Tear the socket down with an orderly close frame on interrupt.
	go func() {
		<-ctx.Done()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "simpeer shutting down")
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		env := protocol.Decode(raw)
		reply, ok := respond(env, name, altitude)
		if !ok {
			log.Printf("Ignoring envelope type %q", env.Type)
			continue
		}

		log.Printf("%s -> %s", env.Type, reply.Type)
		if err := c.writeEnvelope(reply); err != nil {
			return err
		}
	}
}

// respond maps an inbound bridge envelope to the reply a simulator client
// would send. The second return value is false for envelopes that need no
// reply.
func respond(env protocol.Envelope, name string, altitude float64) (protocol.Envelope, bool) {
	switch env.Type {
	case protocol.TypeRequest:
		data, _ := env.Data.(map[string]interface{})
		if data["type"] == protocol.TypeAircraftData {
			return aircraftEnvelope(altitude), true
		}
		return protocol.Envelope{}, false

	case protocol.TypeStatus:
		return statusEnvelope(name), true

	case protocol.TypePing:
		return pongEnvelope(), true

	default:
		return protocol.Envelope{}, false
	}
}

// statusEnvelope reports the fake simulator as connected and loaded.
func statusEnvelope(name string) protocol.Envelope {
	return protocol.Envelope{
		Type: protocol.TypeStatus,
		Data: map[string]interface{}{
			"simulator_connected": true,
			"simulator_loaded":    true,
			"simulator_name":      name,
			"last_error":          0,
		},
	}
}

// aircraftEnvelope builds a nested-format aircraft data frame.
func aircraftEnvelope(altitude float64) protocol.Envelope {
	return protocol.Envelope{
		Type: protocol.TypeAircraftData,
		Data: map[string]interface{}{
			"Aircraft": map[string]interface{}{
				"PLANE_ALTITUDE":     altitude,
				"AIRSPEED_INDICATED": 120.0,
				"PLANE_HEADING":      90.0,
			},
		},
	}
}

func pongEnvelope() protocol.Envelope {
	return protocol.Envelope{
		Type: protocol.TypePong,
		Data: map[string]interface{}{
			"timestamp": time.Now().UnixMilli(),
		},
	}
}

// streamAircraftData pushes aircraft frames at a fixed interval until ctx is
// cancelled. Write errors end the stream; the read loop notices the broken
// connection on its own.
func streamAircraftData(ctx context.Context, c *client, altitude float64, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.writeEnvelope(aircraftEnvelope(altitude)); err != nil {
				return
			}
		}
	}
}
