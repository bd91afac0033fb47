package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axolutions/linkbio-dashboard/pkg/pkce"
)

func newPKCECmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "pkce",
		Short: "Print a PKCE verifier and S256 challenge for manual provider testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pair, err := pkce.GeneratePair()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(map[string]string{
					"code_verifier":         pair.Verifier,
					"code_challenge":        pair.Challenge,
					"code_challenge_method": pair.Method(),
				})
			}
			_, err = fmt.Fprintf(out, "code_verifier=%s\ncode_challenge=%s\ncode_challenge_method=%s\n",
				pair.Verifier, pair.Challenge, pair.Method())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the pair as JSON")
	return cmd
}
