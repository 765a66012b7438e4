// Package spkmeans is normalized spectral clustering for Go.
//
// Given n points in d-dimensional space, the pipeline builds
//
//	W  weighted adjacency    W[i][j] = exp(-‖p_i − p_j‖₂ / 2), W[i][i] = 0
//	D  diagonal degrees      D[i][i] = Σ_j W[i][j]
//	N  normalized Laplacian  N = D^{-1/2} (D − W) D^{-1/2}
//
// then diagonalizes N with Jacobi rotations, picks the embedding dimension k
// with the eigengap heuristic, row-normalizes the leading k eigenvectors into
// T and clusters the rows of T with k-means (k-means++ seeded).
//
// Packages:
//
//	matrix/     - dense row-major matrices, diagonal-aware Mul, validators
//	point/      - points, point sets, Euclidean distance
//	similarity/ - W and D
//	laplacian/  - D − W and its symmetric normalization
//	jacobi/     - symmetric eigensolver with an explicit Config
//	embedding/  - spectrum order, eigengap, U and T
//	kmeans/     - Lloyd iterations, empty-cluster policies, k-means++
//	dataio/     - CSV/.gz loader, 4-decimal presenter
//	config/     - YAML configuration
//	metrics/    - Prometheus collectors and textfile export
//	cmd/spkmeans - command line tool
//
// This package ties the stages together: Run stops at a Goal ("wam", "ddg",
// "lnorm", "jacobi", "spk"), Cluster runs everything, and Weights, Degrees,
// Laplacian, Jacobi, Spectral and KMeans expose the same steps over plain
// [][]float64 for host bindings.
//
// Quick example:
//
//	T, err := spkmeans.Spectral([][]float64{{0, 0}, {0, 1}, {10, 0}, {10, 1}}, 2)
//	if err != nil {
//		fmt.Println(spkmeans.Classify(err).Message())
//	}
//
// Errors fall into three classes (ErrInvalidInput, ErrAllocation,
// ErrDegenerateGraph); Classify maps any error to its Kind.
package spkmeans
