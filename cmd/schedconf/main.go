package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/obs-scheduling/schedconf/internal/bus"
	"github.com/obs-scheduling/schedconf/internal/confcomm"
	"github.com/obs-scheduling/schedconf/internal/config"
	"github.com/obs-scheduling/schedconf/internal/events"
	"github.com/obs-scheduling/schedconf/internal/fields"
	"github.com/obs-scheduling/schedconf/internal/storage/postgres"
	"github.com/obs-scheduling/schedconf/internal/version"
)

func fatal(msg string, err error) {
	events.Emit("error", "system.error", msg, map[string]interface{}{
		"error": err.Error(),
	})
	os.Exit(1)
}

func main() {
	cfgPath := flag.String("config", "schedconf.yaml", "path to the settings file")
	flag.Parse()

	settings, err := config.LoadSettings(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load settings: %v\n", err)
		os.Exit(1)
	}

	var runID string
	if settings.Events.Postgres {
		client, err := postgres.New()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: event persistence disabled: %v\n", err)
		} else {
			events.SetPostgresClient(client)
			defer client.Close()
			runID = client.RunID()
		}
	}

	hostname, _ := os.Hostname()
	startupFields := map[string]interface{}{
		"version":  version.Version,
		"bus":      settings.BusKind(),
		"hostname": hostname,
		"pid":      os.Getpid(),
	}
	if runID != "" {
		startupFields["run_id"] = runID
	}
	events.Emit("info", "system.startup", "schedconf starting", startupFields)

	var transport bus.Transport
	var source confcomm.Source
	switch settings.BusKind() {
	case "mqtt":
		transport, err = bus.ConnectMQTT(settings.Bus.URL)
	case "nats":
		transport, err = bus.ConnectNATS(settings.Bus.URL)
	case "synthetic":
		source = &confcomm.SyntheticSource{}
	default:
		fatal("unknown bus kind", fmt.Errorf("%q", settings.Bus.Kind))
	}
	if err != nil {
		fatal("bus connect failed", err)
	}
	if transport != nil {
		defer transport.Close()
		events.Emit("info", "bus.connected", "", map[string]interface{}{
			"kind": settings.BusKind(),
		})
		source = confcomm.NewLiveSource(transport, settings.Timeout())
	}

	comm := confcomm.NewCommunicator(source, settings.Bus.Prefix)
	tree, err := comm.Configure()
	if err != nil {
		fatal("configuration acquisition failed", err)
	}

	if settings.ScienceFile != "" {
		sci, err := config.LoadScience(settings.ScienceFile)
		if err != nil {
			fatal("failed to load science proposals", err)
		}
		tree.Science.GeneralProps = sci.General
		tree.Science.SequenceProps = sci.Sequence

		if settings.Fields.Resolve && len(sci.General) > 0 {
			fdb, err := fields.Open(settings.Fields.DSN)
			if err != nil {
				fatal("field database connect failed", err)
			}
			defer fdb.Close()
			if _, err := fields.ResolveProposals(fdb, fields.Selector{}, sci.General); err != nil {
				fatal("field resolution failed", err)
			}
		}

		if transport != nil {
			publisher := confcomm.NewPublisher(transport, settings.Bus.Prefix)
			sent, err := publisher.PublishProposals(&tree.Science)
			if err != nil {
				fatal("proposal publication failed", err)
			}
			events.Emit("info", "confcomm.configured", "proposals sent", map[string]interface{}{
				"sent": sent,
			})
		}
	}

	events.Emit("info", "system.shutdown", "schedconf done", map[string]interface{}{
		"survey_duration": tree.Survey.Duration,
		"num_proposals":   tree.Science.Topology.NumProposals,
	})
}
