package order

type Badge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

const NeutralClass = "badge-neutral"

var statusClasses = map[Status]string{
	StatusPending:    "badge-warning",
	StatusProcessing: "badge-info",
	StatusShipped:    "badge-primary",
	StatusDelivered:  "badge-success",
	StatusCancelled:  "badge-danger",
	StatusRefunded:   "badge-secondary",
}

var paymentClasses = map[PaymentStatus]string{
	PaymentPaid:   "badge-success",
	PaymentUnpaid: "badge-warning",
}

// BadgeFor looks the status up directly. An empty status reads as "pending";
// anything unrecognized keeps its raw text on the neutral class.
func BadgeFor(status Status) Badge {
	if status == "" {
		return Badge{Label: string(StatusPending), Class: NeutralClass}
	}
	if class, ok := statusClasses[status]; ok {
		return Badge{Label: string(status), Class: class}
	}
	return Badge{Label: string(status), Class: NeutralClass}
}

func PaymentBadgeFor(status PaymentStatus) Badge {
	if status == "" {
		return Badge{Label: string(PaymentUnpaid), Class: NeutralClass}
	}
	if class, ok := paymentClasses[status]; ok {
		return Badge{Label: string(status), Class: class}
	}
	return Badge{Label: string(status), Class: NeutralClass}
}
