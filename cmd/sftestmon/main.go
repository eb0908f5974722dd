package main

import (
	"flag"
	"log"
	"os"
	"reflect"

	"github.com/benchkit/sftest.go/pkg/telemetry"
	"github.com/benchkit/sftest.go/pkg/telemetry/msgs"
)

var (
	mqttURL = "mqtt://localhost:1883/sftest/"
)

func init() {
	if val := os.Getenv("SFTEST_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := telemetry.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}

	q.Sub("#", func(topic string, payload []byte) {
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		msg, err := typed.Decode()
		if err != nil {
			log.Printf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
			return
		}
		log.Printf("%s: [%s] %s", topic,
			reflect.Indirect(reflect.ValueOf(msg)).Type().Name(),
			msg.String())
	})
	<-(chan struct{})(nil)
}
