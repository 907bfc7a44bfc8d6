package rx

// Tuple2 holds the latest values of two signals combined with [CombineLatest2].
type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

// Tuple3 holds the latest values of three signals combined with [CombineLatest3].
type Tuple3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}
