package transform

import (
	"fmt"
	"math"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/ironsheep/fezrs/internal/errdefs"
	"github.com/ironsheep/fezrs/internal/raster"
)

// DefaultClusters is the k-means cluster count used when none is configured.
const DefaultClusters = 4

// KMeansParams configures KMeans.
type KMeansParams struct {
	// Clusters is the number of centroids. Must be at least 1.
	Clusters int `yaml:"clusters" json:"clusters"`

	// Threshold stops iterating once fewer than this fraction of samples
	// change cluster in a round. Zero uses the library default.
	Threshold float64 `yaml:"threshold,omitempty" json:"threshold,omitempty"`
}

// DefaultKMeansParams returns four clusters with the default threshold.
func DefaultKMeansParams() KMeansParams {
	return KMeansParams{Clusters: DefaultClusters}
}

// Validate checks the cluster count and threshold.
func (p KMeansParams) Validate() error {
	if p.Clusters < 1 {
		return fmt.Errorf("cluster count must be at least 1, got %d: %w", p.Clusters, errdefs.ErrInvalidConfig)
	}
	if p.Threshold < 0 || p.Threshold >= 1 || math.IsNaN(p.Threshold) {
		return fmt.Errorf("threshold must be in [0, 1), got %v: %w", p.Threshold, errdefs.ErrInvalidConfig)
	}
	return nil
}

// KMeans segments the first plane of r into p.Clusters groups and returns a
// one-plane raster of the same shape in which every pixel holds its
// cluster's centroid.
//
// Samples are clustered as scalars. When the plane has no more distinct
// values than clusters, each value is its own centroid and the result is a
// copy of the plane. NaN samples are not clustered and stay NaN.
func KMeans(r *raster.Raster, p KMeansParams) (*raster.Raster, error) {
	if r == nil {
		return nil, fmt.Errorf("nir band is required: %w", errdefs.ErrMissingBand)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	plane := r.Data(0)
	lo, hi := r.Select(0).MinMax()
	out := raster.New(r.Rows(), r.Cols(), 1)
	res := out.Data(0)
	if math.IsNaN(lo) {
		copy(res, plane)
		return out, nil
	}

	if len(distinct(plane, p.Clusters+1)) <= p.Clusters {
		copy(res, plane)
		return out, nil
	}

	// Centroids are seeded inside the unit square, so samples are
	// clustered on a [0,1] scale and mapped back afterwards.
	span := hi - lo
	obs := make(clusters.Observations, 0, len(plane))
	for _, v := range plane {
		if math.IsNaN(v) {
			continue
		}
		obs = append(obs, clusters.Coordinates{(v - lo) / span})
	}

	km := kmeans.New()
	if p.Threshold > 0 {
		var err error
		km, err = kmeans.NewWithOptions(p.Threshold, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to configure k-means: %w", err)
		}
	}
	cc, err := km.Partition(obs, p.Clusters)
	if err != nil {
		return nil, fmt.Errorf("failed to partition %d samples: %w", len(obs), err)
	}

	centroids := make([]float64, len(cc))
	for i, c := range cc {
		centroids[i] = c.Center[0]*span + lo
	}
	for i, v := range plane {
		if math.IsNaN(v) {
			res[i] = v
			continue
		}
		res[i] = centroids[cc.Nearest(clusters.Coordinates{(v - lo) / span})]
	}
	return out, nil
}

// distinct returns the sorted distinct non-NaN values of data, stopping once
// limit values have been found.
func distinct(data []float64, limit int) []float64 {
	seen := make(map[float64]struct{}, limit)
	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		seen[v] = struct{}{}
		if len(seen) >= limit {
			break
		}
	}
	out := make([]float64, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}
