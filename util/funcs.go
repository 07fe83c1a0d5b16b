package util

import (
	"iter"

	"github.com/hashicorp/go-set/v3"
)

func MapIter[A, B any](iter iter.Seq[A], f func(A) B) iter.Seq[B] {
	return func(yield func(B) bool) {
		for v := range iter {
			if !yield(f(v)) {
				return
			}
		}
	}
}

func CollectIter[A any](iter iter.Seq[A]) []A {
	var slice []A
	for v := range iter {
		slice = append(slice, v)
	}
	return slice
}

func SetFromSeq[V comparable](s iter.Seq[V], size int) *set.Set[V] {
	newSet := set.New[V](size)
	for item := range s {
		newSet.Insert(item)
	}
	return newSet
}
