package dcf

import "github.com/sirupsen/logrus"

// Logger is the package-level structured logger used for the advisory,
// non-fatal situations the library surfaces: negative-variance flooring in
// TerminalVolatilityCurve and skipped zero-width buckets in BucketedDelta.
// Embedding applications may reassign it (e.g. Logger.SetOutput(...),
// Logger.SetFormatter(...)) the same way any logrus consumer would.
var Logger = logrus.New()
