package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"contentauth.dev/c2pa/c2pa"
	"contentauth.dev/c2pa/engine"
	"contentauth.dev/c2pa/engine/grpcengine"
	"contentauth.dev/c2pa/hashutil"
	"contentauth.dev/c2pa/signer"
	"contentauth.dev/c2pa/storage/bundle"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "read":
		return cmdRead(args[1:], out, errOut)
	case "sign":
		return cmdSign(args[1:], out, errOut)
	case "ingredient":
		return cmdIngredient(args[1:], out, errOut)
	case "hash":
		return cmdHash(args[1:], out, errOut)
	case "bundle":
		return cmdBundle(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "c2pa-tool: provenance read/sign/ingredient CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  c2pa-tool read --engine <addr> [--raw] <file>")
	fmt.Fprintln(w, "  c2pa-tool sign --engine <addr> --manifest <def.json> --output <path> --seed-hex <64hex> [--remote-url <url>] [--no-embed] [--reserve <n>] <file>")
	fmt.Fprintln(w, "  c2pa-tool ingredient --engine <addr> [--title <t>] [--hash-alg <alg>] [--bundle <out.tar>] <file>")
	fmt.Fprintln(w, "  c2pa-tool hash [--alg <alg>] [--cid] <file>")
	fmt.Fprintln(w, "  c2pa-tool bundle show <file.tar>")
	fmt.Fprintln(w, "  c2pa-tool bundle verify <file.tar>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - --engine is the gRPC address of an engine daemon; signing uses its key")
	fmt.Fprintln(w, "  - --seed-hex is a 32-byte (64 hex chars) ed25519 seed used locally for reserve sizing")
	fmt.Fprintln(w, "  - hash algorithms: sha256, sha512, sha3-256, blake3")
	fmt.Fprintln(w, "  - bundle verify checks every resource against its recorded content ID")
}

func dialEngine(target string, errOut io.Writer) (*grpcengine.Client, int) {
	if target == "" {
		fmt.Fprintln(errOut, "missing --engine")
		return nil, 2
	}
	client, err := grpcengine.Dial(target, grpcengine.DialOptions{Timeout: 10 * time.Second})
	if err != nil {
		fmt.Fprintf(errOut, "dial engine: %v\n", err)
		return nil, 1
	}
	client.Timeout = 30 * time.Second
	return client, 0
}

func cmdRead(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var engineAddr string
	var raw bool
	fs.StringVar(&engineAddr, "engine", "", "Engine gRPC address")
	fs.BoolVar(&raw, "raw", false, "Print the raw manifest store instead of the resolved tree")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: c2pa-tool read --engine <addr> [--raw] <file>")
		return 2
	}

	ec, code := dialEngine(engineAddr, errOut)
	if code != 0 {
		return code
	}
	defer ec.Close()

	asset := engine.FileAsset{Path: fs.Arg(0)}

	if raw {
		res, err := ec.Read(context.Background(), asset)
		if engine.IsNoProvenance(err) {
			fmt.Fprintln(errOut, "no provenance data")
			return 1
		}
		if err != nil {
			fmt.Fprintf(errOut, "read: %v\n", err)
			return 1
		}
		_, _ = out.Write(res.ManifestStore)
		fmt.Fprintln(out)
		return 0
	}

	store, err := c2pa.Read(context.Background(), ec, asset)
	if err != nil {
		fmt.Fprintf(errOut, "read: %v\n", err)
		return 1
	}
	if store == nil {
		fmt.Fprintln(errOut, "no provenance data")
		return 1
	}
	b, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		fmt.Fprintf(errOut, "encode: %v\n", err)
		return 1
	}
	_, _ = out.Write(b)
	fmt.Fprintln(out)
	return 0
}

func cmdSign(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var engineAddr string
	var manifestPath string
	var outputPath string
	var seedHex string
	var remoteURL string
	var noEmbed bool
	var reserve int
	fs.StringVar(&engineAddr, "engine", "", "Engine gRPC address")
	fs.StringVar(&manifestPath, "manifest", "", "Manifest definition JSON file")
	fs.StringVar(&outputPath, "output", "", "Signed asset destination")
	fs.StringVar(&seedHex, "seed-hex", "", "ed25519 seed as 64 hex chars")
	fs.StringVar(&remoteURL, "remote-url", "", "Publish the manifest at a remote URL instead of embedding")
	fs.BoolVar(&noEmbed, "no-embed", false, "Do not embed the manifest in the signed asset")
	fs.IntVar(&reserve, "reserve", 0, "Bytes reserved for the claim signature envelope")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: c2pa-tool sign --engine <addr> --manifest <def.json> --output <path> --seed-hex <64hex> <file>")
		return 2
	}
	if manifestPath == "" {
		fmt.Fprintln(errOut, "missing --manifest")
		return 2
	}
	if outputPath == "" {
		fmt.Fprintln(errOut, "missing --output")
		return 2
	}

	s, code := signerFromSeed(seedHex, errOut)
	if code != 0 {
		return code
	}

	defBytes, err := os.ReadFile(manifestPath)
	if err != nil {
		fmt.Fprintf(errOut, "read manifest: %v\n", err)
		return 1
	}
	var def c2pa.Definition
	if err := json.Unmarshal(defBytes, &def); err != nil {
		fmt.Fprintf(errOut, "invalid manifest definition: %v\n", err)
		return 2
	}

	ec, code := dialEngine(engineAddr, errOut)
	if code != 0 {
		return code
	}
	defer ec.Close()

	client, err := c2pa.New(ec, c2pa.Options{Signer: s})
	if err != nil {
		fmt.Fprintf(errOut, "client: %v\n", err)
		return 1
	}

	embed := !noEmbed
	res, err := client.Sign(context.Background(), c2pa.SignProps{
		Manifest:   c2pa.NewManifestBuilder(def),
		Asset:      engine.FileAsset{Path: fs.Arg(0)},
		OutputPath: outputPath,
		Options: c2pa.SignOptions{
			Embed:             &embed,
			RemoteManifestURL: remoteURL,
			ReserveSize:       reserve,
		},
	})
	if err != nil {
		fmt.Fprintf(errOut, "sign: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "signed: %s\n", res.OutputPath)
	return 0
}

func cmdIngredient(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("ingredient", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var engineAddr string
	var title string
	var hashAlg string
	var bundlePath string
	fs.StringVar(&engineAddr, "engine", "", "Engine gRPC address")
	fs.StringVar(&title, "title", "", "Ingredient title (defaults to the file name)")
	fs.StringVar(&hashAlg, "hash-alg", hashutil.DefaultAlgorithm, "Content hash algorithm")
	fs.StringVar(&bundlePath, "bundle", "", "Also write a TAR bundle to this path")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: c2pa-tool ingredient --engine <addr> [--title <t>] [--bundle <out.tar>] <file>")
		return 2
	}
	path := fs.Arg(0)
	if title == "" {
		title = filepath.Base(path)
	}

	ec, code := dialEngine(engineAddr, errOut)
	if code != 0 {
		return code
	}
	defer ec.Close()

	client, err := c2pa.New(ec, c2pa.Options{HashAlgorithm: hashAlg})
	if err != nil {
		fmt.Fprintf(errOut, "client: %v\n", err)
		return 1
	}

	ing, err := client.CreateIngredient(context.Background(), c2pa.IngredientProps{
		Asset: engine.FileAsset{Path: path},
		Title: title,
	})
	if err != nil {
		fmt.Fprintf(errOut, "ingredient: %v\n", err)
		return 1
	}

	if bundlePath != "" {
		f, err := os.Create(bundlePath)
		if err != nil {
			fmt.Fprintf(errOut, "create bundle: %v\n", err)
			return 1
		}
		if err := bundle.Export(f, ing); err != nil {
			_ = f.Close()
			fmt.Fprintf(errOut, "write bundle: %v\n", err)
			return 1
		}
		if err := f.Close(); err != nil {
			fmt.Fprintf(errOut, "close bundle: %v\n", err)
			return 1
		}
	}

	b, err := json.MarshalIndent(ing.Ingredient, "", "  ")
	if err != nil {
		fmt.Fprintf(errOut, "encode: %v\n", err)
		return 1
	}
	_, _ = out.Write(b)
	fmt.Fprintln(out)
	return 0
}

func cmdHash(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var alg string
	var asCID bool
	fs.StringVar(&alg, "alg", hashutil.DefaultAlgorithm, "Hash algorithm")
	fs.BoolVar(&asCID, "cid", false, "Print a CIDv1 content ID instead of a labeled hash")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: c2pa-tool hash [--alg <alg>] [--cid] <file>")
		return 2
	}

	if asCID {
		b, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "read: %v\n", err)
			return 1
		}
		_, _ = fmt.Fprintln(out, hashutil.ContentID(b))
		return 0
	}

	h, err := hashutil.LabeledHashFile(fs.Arg(0), alg)
	if err != nil {
		fmt.Fprintf(errOut, "hash: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, h)
	return 0
}

func cmdBundle(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: c2pa-tool bundle <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: show, verify")
		return 2
	}
	switch args[0] {
	case "show", "verify":
	default:
		fmt.Fprintf(errOut, "unknown bundle subcommand: %s\n", args[0])
		return 2
	}

	fs := flag.NewFlagSet("bundle "+args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(errOut, "usage: c2pa-tool bundle %s <file.tar>\n", args[0])
		return 2
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "open bundle: %v\n", err)
		return 1
	}
	defer f.Close()

	// Import verifies every resource against its recorded content ID.
	ing, err := bundle.Import(f)
	if err != nil {
		fmt.Fprintf(errOut, "invalid bundle: %v\n", err)
		return 1
	}

	if args[0] == "verify" {
		_, _ = fmt.Fprintln(out, "OK")
		return 0
	}

	b, err := json.MarshalIndent(ing.Ingredient, "", "  ")
	if err != nil {
		fmt.Fprintf(errOut, "encode: %v\n", err)
		return 1
	}
	_, _ = out.Write(b)
	fmt.Fprintln(out)
	return 0
}

func signerFromSeed(seedHex string, errOut io.Writer) (signer.Signer, int) {
	if seedHex == "" {
		fmt.Fprintln(errOut, "missing --seed-hex")
		return nil, 2
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil || len(seed) != ed25519.SeedSize {
		fmt.Fprintln(errOut, "invalid --seed-hex: expected 32 bytes (64 hex chars)")
		return nil, 2
	}
	s, err := signer.NewEd25519(ed25519.NewKeyFromSeed(seed))
	if err != nil {
		fmt.Fprintf(errOut, "signer: %v\n", err)
		return nil, 1
	}
	return s, 0
}
