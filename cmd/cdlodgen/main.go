// Command cdlodgen runs the offline heightfield preprocessor: it decodes a
// source heightmap image, computes Lindstrom-Koller error metrics and
// activation levels, meshes the resulting quadtree, and writes the baked
// chunk file a Terrain streams at runtime.
//
// Multiple -input sources are processed concurrently through a jobpool.Pool,
// since each source's decode -> error -> activation -> mesh -> write
// pipeline is independent of every other source's.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/gogpu/cdlod/corelog"
	"github.com/gogpu/cdlod/heightfield"
	"github.com/gogpu/cdlod/jobpool"
)

// printer formats chunk/vertex counts with thousands separators in
// progress logging, since a full-resolution source can mesh into
// millions of vertices and a bare %d is hard to read at a glance.
var printer = message.NewPrinter(language.English)

// inputList collects repeated -input flags into a slice.
type inputList []string

func (l *inputList) String() string { return strings.Join(*l, ",") }

func (l *inputList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	var (
		inputs         inputList
		outDir         = flag.String("out-dir", ".", "directory to write chunk files into")
		metersPerPixel = flag.Float64("meters-per-pixel", 1.0, "world-space size of one source pixel")
		minHeight      = flag.Float64("min-height", 0, "minimum decoded height, meters")
		maxHeight      = flag.Float64("max-height", 1000, "maximum decoded height, meters")
		maxBaseError   = flag.Float64("max-base-error", 0.1, "maximum geometric error at the coarsest LOD level")
		use3DError     = flag.Bool("3d-error", false, "use full 3D distance for the Lindstrom-Koller error metric instead of vertical-only")
		ellipsoidR     = flag.Float64("ellipsoid-radius", 0, "project the heightmap onto a sphere of this radius instead of a flat plane (0 disables)")
		workers        = flag.Int("workers", 0, "number of sources to process concurrently (0 = GOMAXPROCS)")
		verbose        = flag.Bool("v", false, "enable debug logging")
	)
	flag.Var(&inputs, "input", "source heightmap image (PNG or TIFF); repeat for multiple sources")
	flag.Parse()

	if *verbose {
		corelog.Set(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if len(inputs) == 0 {
		log.Fatal("cdlodgen: at least one -input is required")
	}

	cfg := runConfig{
		metersPerPixel: *metersPerPixel,
		minHeight:      *minHeight,
		maxHeight:      *maxHeight,
		maxBaseError:   *maxBaseError,
		use3DError:     *use3DError,
		ellipsoidR:     *ellipsoidR,
	}

	if err := runBatch(inputs, *outDir, *workers, cfg); err != nil {
		log.Fatalf("cdlodgen: %v", err)
	}
}

type runConfig struct {
	metersPerPixel, minHeight, maxHeight, maxBaseError, ellipsoidR float64
	use3DError                                                     bool
}

// runBatch processes every source in inputs concurrently via a jobpool.Pool
// and reports every failure, rather than stopping at the first one, since
// the sources have no dependency on each other.
func runBatch(inputs []string, outDir string, workers int, cfg runConfig) error {
	pool := jobpool.New(workers)
	defer pool.Close()

	errs := make([]error, len(inputs))
	jobs := make([]func(), len(inputs))
	for i, src := range inputs {
		i, src := i, src
		jobs[i] = func() {
			out := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))+".chunks")
			if err := run(src, out, cfg); err != nil {
				errs[i] = fmt.Errorf("%s: %w", src, err)
				return
			}
			log.Printf("cdlodgen: wrote %s", out)
		}
	}

	pool.RunAll(jobs)

	var failed []string
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err.Error())
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d sources failed:\n%s", len(failed), len(inputs), strings.Join(failed, "\n"))
	}
	return nil
}

func run(input, output string, cfg runConfig) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open %q: %w", input, err)
	}
	defer f.Close()

	var ellipsoid *heightfield.EllipsoidConfig
	if cfg.ellipsoidR > 0 {
		ellipsoid = &heightfield.EllipsoidConfig{Radius: cfg.ellipsoidR}
	}

	loader := heightfield.NewLoader(heightfield.Config{
		MetersPerPixel: cfg.metersPerPixel,
		MinHeight:      cfg.minHeight,
		MaxHeight:      cfg.maxHeight,
		Ellipsoid:      ellipsoid,
		Use3DErrorCalc: cfg.use3DError,
	})

	hm, err := loader.Load(f)
	if err != nil {
		return fmt.Errorf("load heightmap: %w", err)
	}
	log.Printf("cdlodgen: %s: decoded %dx%d heightmap, tree depth %d", input, hm.Side, hm.Side, hm.TreeDepth)

	heightfield.ComputeErrors(hm, cfg.maxBaseError)

	prop := heightfield.NewPropagator(hm)
	prop.Run()

	chunks := heightfield.Mesh(hm)

	var vertexCount, indexCount int
	for _, c := range chunks {
		vertexCount += len(c.Vertices)
		indexCount += len(c.Indices)
	}
	log.Println(printer.Sprintf("cdlodgen: %s: meshed %s chunks (%s vertices, %s indices)",
		input, number.Decimal(len(chunks)), number.Decimal(vertexCount), number.Decimal(indexCount)))

	if err := heightfield.WriteChunkFile(output, hm.TreeDepth, float32(cfg.maxBaseError), chunks); err != nil {
		return fmt.Errorf("write chunk file: %w", err)
	}
	return nil
}
