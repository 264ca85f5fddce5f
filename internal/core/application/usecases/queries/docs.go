// Package queries holds the read side of the order status workflow. Queries
// never change state: the order overview is assembled from the aggregate and
// the hold store, the order listing reads the tables directly with SQL.
package queries
