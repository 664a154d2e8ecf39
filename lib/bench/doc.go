/*
Package bench times the serializers of the rpc/serializer package on the sample packet.

A run first keeps the cpu busy for a configurable number of iterations. Then, for every
selected serializer, it checks that the fixture survives a round trip and times two phases:

	first   a fresh serializer and writer; includes plan building and buffer growth
	second  the same serializer and writer after Reset, repeated Config.Rounds times

Each phase records its duration per round, the encoded bytes per operation and the heap
allocations per operation. The Report prints the results, writes them as CSV and exports them
in Prometheus text format.

Usage:

	cfg := bench.DefaultConfig()
	cfg.Loops = 10000
	report, err := bench.Run(ctx, cfg)
	if err != nil {
		return err
	}
	report.Print(os.Stdout)
*/
package bench
