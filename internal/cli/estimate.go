package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Werneck0live/calculadora-energia/internal/estimate"
	"github.com/Werneck0live/calculadora-energia/internal/present"
)

func newEstimateCmd(opts *options) *cobra.Command {
	var (
		postalCode  string
		consumption string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "estimar",
		Short: "Calcula a conta para um CEP e um consumo mensal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := estimate.NewRequest(postalCode, consumption)
			if err != nil {
				_ = present.RenderError(cmd.ErrOrStderr(), err)
				return errReported
			}

			res, err := opts.client().Estimate(cmd.Context(), req)
			if err != nil {
				_ = present.RenderError(cmd.ErrOrStderr(), err)
				return errReported
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(estimate.NewCalculateResponse(res))
			}
			return present.Render(cmd.OutOrStdout(), res, req.ConsumptionKwh)
		},
	}

	cmd.Flags().StringVar(&postalCode, "cep", "", "CEP, com ou sem hífen")
	cmd.Flags().StringVar(&consumption, "consumo", "", "consumo mensal em kWh (aceita vírgula)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "imprime a resposta em JSON")
	_ = cmd.MarkFlagRequired("cep")
	_ = cmd.MarkFlagRequired("consumo")
	return cmd
}
