// Package github shapes validated review batches into the request body
// of the GitHub create-review API. It builds values only; the
// authenticated HTTP call that submits them belongs to the surrounding
// orchestration.
//
// See: https://docs.github.com/en/rest/pulls/reviews#create-a-review-for-a-pull-request
package github
