package util

import "time"

// ExpectedDeliveryDate estimates when an order placed at `from` arrives:
// add processing plus shipping calendar days, then push the result forward
// one day at a time while it falls on a Saturday or Sunday.
func ExpectedDeliveryDate(from time.Time, processingDays, shippingDays int) time.Time {
	d := from.AddDate(0, 0, processingDays+shippingDays)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
