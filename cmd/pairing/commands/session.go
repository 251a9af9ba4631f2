package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"pairing/internal/domain"
)

func printSession(w io.Writer, sess domain.Session) {
	fmt.Fprintf(w, "Session %s (%d participants)\n", sess.ID, len(sess.Keys))
	for i, k := range sess.Keys {
		fmt.Fprintf(w, "  %d. %s  %s\n", i+1, k, k.ParticipantID())
	}
}

func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [session-id]",
		Short: "Create a session holding this device's key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := devicePublicKey()
			if err != nil {
				return err
			}
			var id domain.SessionID
			if len(args) == 1 {
				id = domain.SessionID(args[0])
			}
			sess, err := wire.Sessions.StartSession(id, pub)
			if err != nil {
				return fmt.Errorf("starting session: %w", err)
			}
			printSession(cmd.OutOrStdout(), sess)
			return nil
		},
	}
}

func joinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <session-id>",
		Short: "Add this device's key to a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := devicePublicKey()
			if err != nil {
				return err
			}
			sess, err := wire.Sessions.JoinSession(domain.SessionID(args[0]), pub)
			if err != nil {
				return fmt.Errorf("joining session %q: %w", args[0], err)
			}
			printSession(cmd.OutOrStdout(), sess)
			return nil
		},
	}
}

func participantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "participants <session-id>",
		Short: "List the keys in a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := wire.Sessions.Participants(domain.SessionID(args[0]))
			if err != nil {
				return fmt.Errorf("fetching participants: %w", err)
			}
			printSession(cmd.OutOrStdout(), sess)
			return nil
		},
	}
}

func ackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ack <participant-id> <count>",
		Short: "Report how many participants this device has seen",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return domain.Generalf("count %q is not a number", args[1])
			}
			ready, err := wire.Sessions.Ack(args[0], n)
			if err != nil {
				return fmt.Errorf("ack: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ready: %t\n", ready)
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [participant-id]",
		Short: "Mark a participant deleted (default: this device)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var peer string
			if len(args) == 1 {
				peer = args[0]
			} else {
				pub, err := devicePublicKey()
				if err != nil {
					return err
				}
				peer = pub.ParticipantID().String()
			}
			if err := wire.Sessions.Delete(peer); err != nil {
				return fmt.Errorf("delete: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", peer)
			return nil
		},
	}
}

func refreshCmd() *cobra.Command {
	var (
		wait     bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "refresh <session-id>",
		Short: "Acknowledge peers and finish pairing once everyone agrees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := devicePublicKey()
			if err != nil {
				return err
			}
			id := domain.SessionID(args[0])
			out := cmd.OutOrStdout()
			for {
				res, err := wire.Sessions.Refresh(id, pub)
				if err != nil {
					return fmt.Errorf("refresh: %w", err)
				}
				if res.Deleted {
					printSession(out, res.Session)
					fmt.Fprintln(out, "Pairing complete.")
					return nil
				}
				if !wait {
					fmt.Fprintf(out, "Waiting: %d participants, ready=%t\n", len(res.Session.Keys), res.Ready)
					return nil
				}
				select {
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				case <-time.After(interval):
				}
			}
		},
	}
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "poll until pairing completes")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "poll interval with --wait")
	return cmd
}
