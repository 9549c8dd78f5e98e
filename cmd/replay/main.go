package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"fluidworks.ai/internal/sim/world"
)

// replay reads hour-rotated audit logs and prints transfer outcomes,
// optionally filtered by actor and tick range.
func main() {
	var (
		auditDir = flag.String("audit", "", "audit dir containing audit-*.jsonl.zst")
		actor    = flag.String("actor", "", "only entries for this actor (optional)")
		fromTick = flag.Uint64("from_tick", 0, "start at tick (inclusive, optional)")
		toTick   = flag.Uint64("to_tick", 0, "stop at tick (inclusive, optional)")
	)
	flag.Parse()

	if *auditDir == "" {
		fmt.Fprintln(os.Stderr, "missing -audit")
		os.Exit(2)
	}

	files, err := listAuditFiles(*auditDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list audit:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no audit files found in", *auditDir)
		os.Exit(1)
	}

	var total, shown int
	for _, path := range files {
		n, s, err := dumpFile(path, *actor, *fromTick, *toTick)
		if err != nil {
			fmt.Fprintln(os.Stderr, "replay:", err)
			os.Exit(1)
		}
		total += n
		shown += s
	}
	fmt.Printf("replay ok: %d entries, %d shown\n", total, shown)
}

func listAuditFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "audit-") && strings.HasSuffix(name, ".jsonl.zst") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out, nil
}

func dumpFile(path, actor string, fromTick, toTick uint64) (total, shown int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return 0, 0, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	for sc.Scan() {
		var e world.AuditEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return total, shown, fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		total++
		if actor != "" && e.Actor != actor {
			continue
		}
		if e.Tick < fromTick {
			continue
		}
		if toTick != 0 && e.Tick > toTick {
			continue
		}
		shown++
		status := "ok"
		if !e.OK {
			status = "fail"
			if e.Code != "" {
				status = e.Code
			}
		}
		fmt.Printf("t=%d %s %s %s->%s amount=%.2f %s %s\n",
			e.Tick, status, e.Action, e.Source, e.Dest, e.Amount, e.Actor, e.Message)
	}
	return total, shown, sc.Err()
}
