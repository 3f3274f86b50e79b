// Package barrier computes and reconciles pairwise block policies between
// tenant segments. Segments are grouped by the prefix before the first "-"
// in their name; members of a group stay mutually unblocked while every
// group is blocked from every other group. Segments matching the exclusion
// pattern are left out of the computation entirely.
package barrier
