package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"friday/internal/assistant"
	"friday/internal/notifier"
	"friday/internal/recorder"
)

// dispatchFunc answers text and names the rule that handled it.
type dispatchFunc func(ctx context.Context, text string) (reply, rule string)

func newChatCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to FRIDAY in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			dispatch := func(ctx context.Context, text string) (string, string) {
				return app.dispatch(ctx, recorder.ChannelCLI, text)
			}
			return chat(cmd.Context(), dispatch, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newAskCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ask <message>",
		Short:   "Answer a single message and exit",
		Example: "  friday ask analyze stock tcs on nse\n  friday ask what is a mutual fund",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			reply, _ := app.dispatch(cmd.Context(), recorder.ChannelCLI, strings.Join(args, " "))
			printReply(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}

// chat reads one message per line until EOF or a farewell.
func chat(ctx context.Context, dispatch dispatchFunc, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Fprintln(out, "FRIDAY is ready. Type 'help' to see what I can do, 'exit' to leave.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		reply, rule := dispatch(ctx, scanner.Text())
		printReply(out, reply)
		if rule == assistant.RuleFarewell {
			return nil
		}
	}
}

func printReply(out io.Writer, reply string) {
	text, chartPath := notifier.ExtractChart(reply)
	fmt.Fprintf(out, "FRIDAY: %s\n", text)
	if chartPath != "" {
		fmt.Fprintf(out, "Chart: %s\n", chartPath)
	}
}
