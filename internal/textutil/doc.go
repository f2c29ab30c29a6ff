// Package textutil holds the small text transforms shared by the asset
// pipelines: markup entity escaping and file name stem derivation.
package textutil
