package inspect

import (
	"encoding/hex"
	"fmt"

	"github.com/ValentinKolb/dWire/cmd/util"
	"github.com/ValentinKolb/dWire/lib/sample"
	"github.com/ValentinKolb/dWire/lib/wire"
	"github.com/spf13/cobra"
)

// InspectCmd prints the encoding of the sample packet
var InspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the encoded sample packet",
	Long: `Serialize the sample packet once with the selected serializer and print
its length and a hex dump of the bytes.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return util.BindCommandFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := util.GetSerializer()
		if err != nil {
			return err
		}

		pkt := sample.New()
		w := wire.NewWriter()
		if err := s.Serialize(w, pkt); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, pkt)
		fmt.Fprintf(out, "\n%d bytes\n%s", w.Length(), hex.Dump(w.Bytes()))
		return nil
	},
}

func init() {
	key := "serializer"
	InspectCmd.Flags().String(key, "net", util.WrapString("serializer to use (gob, json, net, binary)"))
}
