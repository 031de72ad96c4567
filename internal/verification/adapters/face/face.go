// Package face compares faces through the embedding sidecar.
package face

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"kycverify/internal/verification/adapters/sidecar"
	"kycverify/internal/verification/ports"
)

const (
	adapterName    = "face"
	embeddingsPath = "/v1/embeddings"
)

type embeddingsResponse struct {
	Faces []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"faces"`
}

// Comparer implements ports.FaceComparer.
type Comparer struct {
	client *sidecar.Client
}

// New returns a comparer talking to the sidecar at baseURL.
func New(baseURL string, opts ...sidecar.Option) *Comparer {
	return &Comparer{client: sidecar.New(adapterName, baseURL, opts...)}
}

// FaceDistance embeds both images concurrently and returns the Euclidean
// distance between their first faces.
func (c *Comparer) FaceDistance(ctx context.Context, selfie, idPhoto []byte) (float64, error) {
	var a, b []float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = c.embed(gctx, ports.ImageSelfie, selfie)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = c.embed(gctx, ports.ImageIDFront, idPhoto)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return Distance(a, b)
}

// embed returns the embedding of the most prominent face in image.
func (c *Comparer) embed(ctx context.Context, image string, data []byte) ([]float64, error) {
	var resp embeddingsResponse
	if err := c.client.PostImage(ctx, embeddingsPath, image, data, &resp); err != nil {
		return nil, err
	}
	if len(resp.Faces) == 0 || len(resp.Faces[0].Embedding) == 0 {
		return nil, ports.NoFaceDetected(adapterName, image)
	}
	return resp.Faces[0].Embedding, nil
}

func (c *Comparer) Health(ctx context.Context) error {
	return c.client.Health(ctx)
}

// Distance is the Euclidean distance between two embeddings of equal length.
func Distance(a, b []float64) (float64, error) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, ports.NewAdapterError(ports.ErrorBadData, adapterName,
			fmt.Sprintf("embedding length mismatch: %d vs %d", len(a), len(b)), nil)
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	dist := math.Sqrt(sum)
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return 0, ports.NewAdapterError(ports.ErrorBadData, adapterName, "embedding contains non-finite values", nil)
	}
	return dist, nil
}
