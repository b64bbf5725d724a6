package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/2beens/stairstats/internal/stairstats/report"
	"github.com/2beens/stairstats/internal/stairstats/session"
	"github.com/2beens/stairstats/pkg"

	log "github.com/sirupsen/logrus"
)

func liveStatusPrinter(out io.Writer) session.Option {
	return session.WithLiveFunc(func(status session.LiveStatus) {
		fmt.Fprintf(out, "\r%-12s reps: %d ", report.FormatDuration(status.ElapsedSeconds), status.Repetitions)
	})
}

type inputLine struct {
	line []byte
	err  error
}

// readLines feeds lines from in until a read fails or done is closed. A
// reader blocked in Read is left behind when done closes.
func readLines(in io.Reader, done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			line, err := reader.ReadBytes('\n')
			select {
			case lines <- inputLine{line: line, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

// runSession records one session from line based input: an empty line
// counts a repetition, "e" ends the session and asks what to do with it.
// A cancelled ctx drops the open session, even while waiting for input.
func (a *app) runSession(ctx context.Context, in io.Reader, out io.Writer, opts ...session.Option) error {
	controller := session.NewController(a.store, a.metricsManager, opts...)
	if err := controller.BeginSession(); err != nil {
		return err
	}
	fmt.Fprintln(out, "session started: [enter] = one round trip, [e] = end")

	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)

	confirmDiscard := false
	for {
		var next inputLine
		select {
		case <-ctx.Done():
			abandon(controller, out)
			return ctx.Err()
		case next = <-lines:
		}

		line, readErr := next.line, next.err
		if readErr != nil && (!errors.Is(readErr, io.EOF) || len(line) == 0) {
			abandon(controller, out)
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
		input := pkg.BytesToString(bytes.TrimSpace(line))

		switch controller.State() {
		case session.StateActive:
			switch input {
			case "":
				if err := controller.RecordRepetition(); err != nil {
					return err
				}
				fmt.Fprintf(out, "reps: %d\n", controller.Repetitions())
			case "e":
				summary, err := controller.RequestEnd(ctx)
				if err != nil {
					fmt.Fprintf(out, "could not end session: %s\n", err)
					continue
				}
				s := summary.Session
				fmt.Fprintf(out, "%d reps in %s: %.1f kcal, %.1f m climbed\n",
					s.RepetitionCount, report.FormatDuration(s.DurationSeconds), s.CaloriesBurned, s.HeightClimbedMeters)
				fmt.Fprintln(out, "[s]ave, [d]iscard or [c]ontinue?")
			default:
				fmt.Fprintf(out, "unknown input %q\n", input)
			}

		case session.StateEnding:
			if confirmDiscard {
				confirmDiscard = false
				if input != "y" {
					fmt.Fprintln(out, "[s]ave, [d]iscard or [c]ontinue?")
					continue
				}
				if err := controller.ConfirmDiscard(); err != nil {
					return err
				}
				fmt.Fprintln(out, "session discarded")
				return nil
			}

			switch input {
			case "s":
				saved, err := controller.ConfirmSave(ctx)
				if err != nil {
					fmt.Fprintf(out, "could not save: %s, try again\n", err)
					continue
				}
				fmt.Fprintf(out, "saved session #%d\n", saved.ID)
				return nil
			case "d":
				confirmDiscard = true
				fmt.Fprintln(out, "discard this session? [y/N]")
			case "c":
				if err := controller.CancelEnd(); err != nil {
					return err
				}
				fmt.Fprintf(out, "continuing, reps: %d\n", controller.Repetitions())
			default:
				fmt.Fprintf(out, "unknown input %q\n", input)
			}

		default:
			return fmt.Errorf("unexpected session state: %s", controller.State())
		}

		if errors.Is(readErr, io.EOF) {
			abandon(controller, out)
			return nil
		}
	}
}

// abandon drops an unfinished session and stops its timer.
func abandon(controller *session.Controller, out io.Writer) {
	state := controller.State()
	if state != session.StateActive && state != session.StateEnding {
		return
	}
	if err := controller.Abandon(); err != nil {
		log.Errorf("abandon session: %s", err)
		return
	}
	fmt.Fprintln(out, "session not saved")
}

func (a *app) runInteractiveSession(ctx context.Context) error {
	return a.runSession(ctx, os.Stdin, os.Stdout, liveStatusPrinter(os.Stdout))
}
