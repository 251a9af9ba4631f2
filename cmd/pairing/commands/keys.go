package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pairing/internal/crypto"
	"pairing/internal/domain"
)

// requirePassphrase prompts on the terminal when -p was not given.
func requirePassphrase() error {
	if passphrase != "" {
		return nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return domain.Generalf("passphrase required (-p)")
	}
	fmt.Fprint(os.Stderr, "Passphrase: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return domain.Generalf("reading passphrase: %v", err)
	}
	if len(b) == 0 {
		return domain.Generalf("passphrase required")
	}
	passphrase = string(b)
	crypto.Wipe(b)
	return nil
}

// devicePublicKey loads the stored key pair and returns its public half.
func devicePublicKey() (domain.PublicKey, error) {
	if err := requirePassphrase(); err != nil {
		return domain.PublicKey{}, err
	}
	kp, ok, err := wire.Keys.LoadKeyPair(passphrase)
	if err != nil {
		return domain.PublicKey{}, domain.Generalf("load device key: %v", err)
	}
	if !ok {
		return domain.PublicKey{}, domain.Generalf("no device key; run `pairing init` first")
	}
	defer crypto.WipeKeyPair(&kp)
	return crypto.EncodePublicKey(kp), nil
}

func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate this device's key pair and store it securely",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if !force {
				_, ok, err := wire.Keys.LoadKeyPair(passphrase)
				if err != nil {
					return domain.Generalf("checking existing device key (use --force to replace it): %v", err)
				}
				if ok {
					return domain.Generalf("device key already exists; use --force to replace it")
				}
			}
			kp, err := wire.Generator.GenerateKeyPair()
			if err != nil {
				return domain.Generalf("generate key pair: %v", err)
			}
			defer crypto.WipeKeyPair(&kp)
			if err := wire.Keys.SaveKeyPair(passphrase, kp); err != nil {
				return domain.Generalf("save key pair: %v", err)
			}
			pub := crypto.EncodePublicKey(kp)
			fmt.Fprintf(cmd.OutOrStdout(), "Device key created.\nFingerprint: %s\n", crypto.Fingerprint(pub))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing key")
	return cmd
}

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the device public key, fingerprint and participant id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := devicePublicKey()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Public key:     %s\n", pub)
			fmt.Fprintf(out, "Fingerprint:    %s\n", crypto.Fingerprint(pub))
			fmt.Fprintf(out, "Participant id: %s\n", pub.ParticipantID())
			return nil
		},
	}
}
