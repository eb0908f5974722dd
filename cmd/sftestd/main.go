package main

import (
	"flag"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/benchkit/sftest.go/pkg/cls"
	"github.com/benchkit/sftest.go/pkg/console"
	"github.com/benchkit/sftest.go/pkg/experiment"
	"github.com/benchkit/sftest.go/pkg/flash"
	"github.com/benchkit/sftest.go/pkg/flash/remote"
	fx "github.com/benchkit/sftest.go/pkg/framework"
	"github.com/benchkit/sftest.go/pkg/input"
	"github.com/benchkit/sftest.go/pkg/leds"
	"github.com/benchkit/sftest.go/pkg/shell"
	"github.com/benchkit/sftest.go/pkg/telemetry"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "", "Optional YAML config file.")
	experiment.SetupFlags()
}

func main() {
	flag.Parse()
	if configFile != "" {
		if err := experiment.LoadFile(configFile); err != nil {
			log.Fatalln(err)
		}
	}
	conf := experiment.Default()

	var dev flash.Device
	if conf.Flash == "" || conf.Flash == "mem" {
		dev = flash.NewMemDevice()
	} else {
		client, err := remote.Dial(conf.Flash)
		if err != nil {
			log.Fatalf("flash %q: %v", conf.Flash, err)
		}
		dev = client
	}

	// The display mirrors the console's progress line; keep it quiet
	// while the interactive shell owns the terminal.
	var displayOut io.Writer = os.Stdout
	if conf.Interactive {
		displayOut = ioutil.Discard
	}

	ledSink := leds.NewSink(leds.NewBank(&leds.MemRegisters{}, &leds.MemRegisters{}))
	displaySink := cls.NewSink(&cls.WriterDisplay{W: displayOut})
	consoleSink := console.NewSink(os.Stdout)

	src := input.NewSimSource()
	ctl := experiment.NewController(dev, src, ledSink, displaySink, consoleSink)

	loop := fx.NewLoop()
	loop.Interval = conf.TickInterval()
	loop.Add(ctl)
	loop.AddRunnable(ledSink, displaySink, consoleSink)

	run := fx.NewRunner().HandleSignals()

	if conf.MQTTURL != "" {
		q, err := telemetry.NewQueueFromURL(conf.MQTTURL)
		if err != nil {
			log.Fatalln(err)
		}
		if token := q.Connect(); token.Wait() && token.Error() != nil {
			log.Fatalln(token.Error())
		}
		defer q.Close()
		tsink := telemetry.NewSink(q)
		ctl.Telemetry = tsink
		loop.AddRunnable(tsink)
	}

	if conf.Interactive {
		run.Go(shell.New(loop, ctl.Latest))
	}
	run.Go(fx.NamedRun("loop", loop))
	if err := run.Wait(); err != nil {
		log.Fatalln(err)
	}
}
