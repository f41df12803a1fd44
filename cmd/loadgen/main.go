// Command loadgen connects to a running lobxd instance and streams
// synthetic orders at it, alternating sides the way the reference load
// generator does.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/arvindmenon/lobx/internal/engine"
	"github.com/arvindmenon/lobx/internal/wire"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:6001", "address of the lobxd order listener")
	count := flag.Uint("count", 100, "number of orders to send")
	price := flag.Float64("price", 12.2, "limit price to send every order at")
	qty := flag.Uint("qty", 100, "quantity per order")
	sellEvery := flag.Uint("sell-every", 5, "send a sell order every Nth order, buys otherwise")
	pace := flag.Duration("pace", 0, "delay between sends; 0 sends as fast as possible")
	flag.Parse()

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		log.Fatalf("loadgen: dial %s: %v", *addr, err)
	}
	defer conn.Close()

	fmt.Printf("connected to %s, sending %d orders\n", *addr, *count)

	for i := uint(0); i < *count; i++ {
		side := engine.Buy
		if *sellEvery > 0 && i%*sellEvery == 0 {
			side = engine.Sell
		}

		order := engine.Order{
			ID:    uint32(i),
			Side:  side,
			Price: float32(*price),
			Qty:   uint32(*qty),
		}

		if _, err := conn.Write(wire.Encode(order)); err != nil {
			log.Fatalf("loadgen: write order %d: %v", i, err)
		}

		fmt.Printf("sent %s\n", strings.TrimSpace(order.String()))

		if *pace > 0 {
			time.Sleep(*pace)
		}
	}
}
