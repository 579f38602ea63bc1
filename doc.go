// Package tagplot provides plotting helpers and performance-curve math for
// comparing flavour-tagging algorithms: efficiency and rejection curves,
// binned performance-vs-variable profiles with binomial errors, fraction
// scans, and the axis/colour plumbing shared by the plot commands.
//
// The truth-matching core these curves are computed from lives in the
// vertexing subpackage.
package tagplot
