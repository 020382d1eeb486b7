package service

import "github.com/prometheus/client_golang/prometheus"

var (
	reviewMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "shop_review_mutations_total", Help: "Committed review creations and deletions"},
		[]string{"op"},
	)
	productMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "shop_product_mutations_total", Help: "Committed product writes"},
		[]string{"op"},
	)
	ratingRecalcTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "shop_rating_recalculations_total", Help: "Rating recalculations executed inside review transactions"},
	)
)

func init() { prometheus.MustRegister(reviewMutations, productMutations, ratingRecalcTotal) }
