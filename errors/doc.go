/*
Package errors provides semantic error types for dynamodel.

Every failure of the key codec, the row translator and the model operations is
one of the kinds below. Each kind has a sentinel that can be checked with the
standard errors.Is() function (or the provided helpers) and a typed error that
carries the details:

	var (
	    ErrMissingKeyProperty = errors.New("missing key property")
	    ErrModelTagMismatch   = errors.New("model tag mismatch")
	    ErrUnknownModelTag    = errors.New("unknown model tag")
	    ErrMalformedKey       = errors.New("malformed key")
	    ErrModelResolution    = errors.New("cannot resolve model")
	    ErrTableNotBound      = errors.New("table not bound")
	)

Usage:

	keys, err := codec.Encode(dog, values, registry.PrimaryRole)
	if err != nil {
	    var missing *errors.MissingKeyPropertyError
	    if stderrors.As(err, &missing) {
	        return fmt.Errorf("dog key needs %s", missing.Property)
	    }
	    return err
	}

None of these errors is transient: they signal either a caller contract
violation or stored-data corruption, so nothing in the module retries them.
*/
package errors
