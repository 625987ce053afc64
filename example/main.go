// main.go -- compress/decompress a file with the telomere codec.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/opencoff/telomere"

	flag "github.com/opencoff/pflag"
)

// Ext is the canonical suffix for compressed containers.
const Ext = ".tlmr"

func main() {
	var blockSize, maxSeedLen, maxPasses, cacheBudget int
	var decompress bool
	var limit int

	usage := fmt.Sprintf("%s [options] INPUT OUTPUT", os.Args[0])

	flag.IntVarP(&blockSize, "block-size", "b", 4, "Use `N` plaintext bytes per block")
	flag.IntVarP(&maxSeedLen, "max-seed-len", "s", 1, "Search seeds up to `N` bytes long (the scalar matcher brute-forces the whole space each pass, so raise this with care)")
	flag.IntVarP(&maxPasses, "max-passes", "p", 8, "Run at most `N` bundling passes")
	flag.IntVarP(&cacheBudget, "cache-budget", "c", 1<<20, "Budget `N` bytes for the seed digest cache")
	flag.BoolVarP(&decompress, "decompress", "d", false, "Decompress INPUT instead of compressing it")
	flag.IntVarP(&limit, "limit", "l", -1, "Refuse to decompress more than `N` bytes (-1: unbounded)")
	flag.Usage = func() {
		fmt.Printf("tlmr - compress or decompress with the telomere codec\nUsage: %s\n", usage)
		flag.PrintDefaults()
	}

	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		die("need exactly INPUT and OUTPUT paths!\nUsage: %s\n", usage)
	}
	in, out := args[0], args[1]

	cfg := telomere.NewConfig()
	cfg.BlockSize = blockSize
	cfg.MaxSeedLen = maxSeedLen
	cfg.MaxPasses = maxPasses
	cfg.CacheBudgetBytes = cacheBudget

	if decompress {
		if !strings.HasSuffix(in, Ext) {
			die("%s: compressed input must have the %s extension", in, Ext)
		}
		runDecompress(cfg, in, out, limit)
		return
	}
	if !strings.HasSuffix(out, Ext) {
		die("%s: compressed output must have the %s extension", out, Ext)
	}
	runCompress(cfg, in, out)
}

func runCompress(cfg *telomere.Config, in, out string) {
	result, err := telomere.CompressFile(cfg, in, out, nil)
	if err != nil {
		die("can't compress %s: %s", in, err)
	}
	fmt.Printf("%s -> %s: %d pass(es), gains %v, %d superposed bundle(s)\n", in, out, len(result.Gains), result.Gains, len(result.Superposed))
}

func runDecompress(cfg *telomere.Config, in, out string, limit int) {
	data, err := os.ReadFile(in)
	if err != nil {
		die("can't read %s: %s", in, err)
	}

	var plain []byte
	if limit < 0 {
		plain, err = telomere.Decompress(cfg, data)
	} else {
		plain, err = telomere.DecompressWithLimit(cfg, data, limit)
	}
	if err != nil {
		die("can't decompress %s: %s", in, err)
	}

	if err := os.WriteFile(out, plain, 0644); err != nil {
		die("can't write %s: %s", out, err)
	}
	fmt.Printf("%s -> %s: %d bytes\n", in, out, len(plain))
}

func die(f string, v ...interface{}) {
	warn(f, v...)
	os.Exit(1)
}

func warn(f string, v ...interface{}) {
	z := fmt.Sprintf("%s: %s", os.Args[0], f)
	s := fmt.Sprintf(z, v...)
	if n := len(s); s[n-1] != '\n' {
		s += "\n"
	}

	os.Stderr.WriteString(s)
	os.Stderr.Sync()
}
