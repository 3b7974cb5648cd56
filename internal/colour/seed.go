package colour

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrAchromatic is returned when an image has no cluster with enough chroma
// to suggest a hue.
var ErrAchromatic = errors.New("image has no chromatic colour")

// minSeedChroma is the OKLCH chroma below which a cluster counts as grey.
const minSeedChroma = 0.04

// HueSeed is the hue suggested by an image.
type HueSeed struct {
	Hue    float64
	Hex    string
	Weight float64 // fraction of sampled pixels in the chosen cluster
}

// HueExtractor suggests a base hue from an image by clustering its pixels in
// OKLab and picking the heaviest chromatic cluster.
type HueExtractor struct {
	Clusters      int
	MaxIterations int
	MaxSamples    int
	Seed          uint64
}

// NewHueExtractor returns an extractor with default settings. The fixed
// seed keeps results reproducible.
func NewHueExtractor() *HueExtractor {
	return &HueExtractor{
		Clusters:      6,
		MaxIterations: 20,
		MaxSamples:    2000,
		Seed:          1,
	}
}

type labPoint struct {
	L, A, B float64
}

func (p labPoint) dist2(o labPoint) float64 {
	dl, da, db := p.L-o.L, p.A-o.A, p.B-o.B
	return dl*dl + da*da + db*db
}

// Extract returns the hue of the heaviest cluster whose chroma is at least
// minSeedChroma.
func (e *HueExtractor) Extract(img image.Image) (HueSeed, error) {
	if img == nil {
		return HueSeed{}, fmt.Errorf("image cannot be nil")
	}
	if e.Clusters < 1 {
		return HueSeed{}, fmt.Errorf("cluster count must be at least 1, got %d", e.Clusters)
	}

	points := e.sample(img)
	if len(points) == 0 {
		return HueSeed{}, fmt.Errorf("no pixels found in image")
	}

	centroids, weights := e.kmeans(points)

	best := -1
	for i, c := range centroids {
		if math.Hypot(c.A, c.B) < minSeedChroma {
			continue
		}
		if best < 0 || weights[i] > weights[best] {
			best = i
		}
	}
	if best < 0 {
		return HueSeed{}, ErrAchromatic
	}

	c := centroids[best]
	col := colorful.OkLab(c.L, c.A, c.B).Clamped()
	_, _, h := col.OkLch()
	return HueSeed{Hue: h, Hex: col.Hex(), Weight: weights[best]}, nil
}

// sample grid-samples the image, skipping mostly transparent pixels.
func (e *HueExtractor) sample(img image.Image) []labPoint {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	step := 1
	if e.MaxSamples > 0 && total > e.MaxSamples {
		step = max(int(math.Sqrt(float64(total)/float64(e.MaxSamples))), 1)
	}

	points := make([]labPoint, 0, min(total, max(e.MaxSamples, 1)))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			px := img.At(x, y)
			if _, _, _, a := px.RGBA(); a < 0x8000 {
				continue
			}
			c, ok := colorful.MakeColor(px)
			if !ok {
				continue
			}
			l, a, b := c.OkLab()
			points = append(points, labPoint{l, a, b})
		}
	}
	return points
}

func (e *HueExtractor) kmeans(points []labPoint) ([]labPoint, []float64) {
	rng := rand.New(rand.NewPCG(e.Seed, e.Seed))
	k := min(e.Clusters, len(points))
	centroids := seedCentroids(points, k, rng)
	k = len(centroids)
	assignments := make([]int, len(points))

	for range max(e.MaxIterations, 1) {
		changed := 0
		for i, p := range points {
			n := nearest(p, centroids)
			if assignments[i] != n {
				assignments[i] = n
				changed++
			}
		}

		sums := make([]labPoint, k)
		counts := make([]int, k)
		for i, p := range points {
			c := assignments[i]
			sums[c].L += p.L
			sums[c].A += p.A
			sums[c].B += p.B
			counts[c]++
		}
		for i := range centroids {
			if counts[i] == 0 {
				continue
			}
			n := float64(counts[i])
			centroids[i] = labPoint{sums[i].L / n, sums[i].A / n, sums[i].B / n}
		}

		// Fewer than 1% of points moved.
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}
	}

	weights := make([]float64, k)
	for _, a := range assignments {
		weights[a]++
	}
	for i := range weights {
		weights[i] /= float64(len(points))
	}
	return centroids, weights
}

// seedCentroids picks initial centroids with k-means++.
func seedCentroids(points []labPoint, k int, rng *rand.Rand) []labPoint {
	centroids := make([]labPoint, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	dists := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			dists[i] = p.dist2(centroids[nearest(p, centroids)])
			total += dists[i]
		}
		if total == 0 {
			break
		}

		target := rng.Float64() * total
		pick := -1
		cumulative := 0.0
		for i, d := range dists {
			if d == 0 {
				continue
			}
			pick = i
			cumulative += d
			if cumulative >= target {
				break
			}
		}
		centroids = append(centroids, points[pick])
	}
	return centroids
}

func nearest(p labPoint, centroids []labPoint) int {
	best, bestDist := 0, math.MaxFloat64
	for i, c := range centroids {
		if d := p.dist2(c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
