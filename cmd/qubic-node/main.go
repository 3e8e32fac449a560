// Command qubic-node is a thin CLI wrapper around the direct peer client:
// one-shot queries against a single computor, for operators who want to
// poke a peer without standing up the archiver.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"qubic.li/archiver/identity"
	"qubic.li/archiver/qubicnode"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("qubic-node", flag.ContinueOnError)
	fs.SetOutput(stderr)

	computor := fs.String("computor", os.Getenv("COMPUTOR"), "computor peer address (host:port), required")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()
	if *computor == "" || len(rest) == 0 {
		_, _ = fmt.Fprintln(stderr, "usage: qubic-node --computor host:port <tick-info|entity <id>|computors>")
		return 2
	}

	client, err := qubicnode.DialClient(*computor)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "dial %s: %v\n", *computor, err)
		return 1
	}
	defer client.Close()

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	switch rest[0] {
	case "tick-info":
		info, err := client.GetCurrentTickInfo()
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "tick-info: %v\n", err)
			return 1
		}
		return encodeOrFail(enc, stderr, info)

	case "entity":
		if len(rest) < 2 {
			_, _ = fmt.Fprintln(stderr, "usage: qubic-node --computor host:port entity <identity>")
			return 2
		}
		pubKey, err := identity.Decode(rest[1])
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "invalid identity: %v\n", err)
			return 2
		}
		resp, err := client.RequestEntity(pubKey)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "entity: %v\n", err)
			return 1
		}
		return encodeOrFail(enc, stderr, resp)

	case "computors":
		resp, err := client.RequestComputors()
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "computors: %v\n", err)
			return 1
		}
		return encodeOrFail(enc, stderr, resp)

	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", rest[0])
		return 2
	}
}

func encodeOrFail(enc *json.Encoder, stderr io.Writer, v any) int {
	if err := enc.Encode(v); err != nil {
		_, _ = fmt.Fprintf(stderr, "encode response: %v\n", err)
		return 1
	}
	return 0
}
