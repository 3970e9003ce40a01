package redis

import "fmt"

const ns = "seatwise:v1"

func KeyReservationPayload(reservationID string) string {
	return fmt.Sprintf("%s:reservation:%s:payload", ns, reservationID)
}

func KeyArrivalCalendar() string {
	return ns + ":arrivals:calendar"
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelReservationsChanged() string {
	return ns + ":reservations:changed"
}
