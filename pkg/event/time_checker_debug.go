//go:build debug

package event

import "fmt"

func checkMonotonic(c *TimeChecker, receiveTime int64) {
	if receiveTime < c.last {
		panic(fmt.Sprintf("time_checker: receive_time regressed: %d < %d", receiveTime, c.last))
	}
	c.last = receiveTime
}
