// Package ordersubmit provides a small net/http handler that accepts the order
// sink written by a dragdrop controller, validates it, and hands the decoded
// records to a callback.
//
// The handler responds to POST requests. Form posts carry the serialized order
// in a single field (drop-article-order by default); requests with a JSON
// content type carry the array as the body.
package ordersubmit
