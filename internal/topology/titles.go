package topology

import (
	"fmt"
	"strings"

	"icnview/internal/domain"
)

func hostTitle(addrs []domain.AddressRecord) string {
	var sb strings.Builder
	for _, a := range addrs {
		ip := a.Address()
		if ip == "" {
			continue
		}
		fmt.Fprintf(&sb, "IP: <b>%s</b><br>", ip)
	}
	sb.WriteString("Type: <b>Host</b>")
	return sb.String()
}

func switchTitle(nodeID string) string {
	return fmt.Sprintf("Name: <b>%s</b><br>Type: <b>Switch</b>", nodeID)
}

func edgeTitle(srcPort, dstPort string) string {
	return fmt.Sprintf("Source Port: <b>%s</b><br>Dest Port: <b>%s</b>", srcPort, dstPort)
}

func nodeIDLine(id string) string {
	return fmt.Sprintf("<br/><b>Node ID: %s</b>", id)
}

func linkIDLine(compressed string) string {
	return fmt.Sprintf("<br/>Link ID: <b>%s</b>", compressed)
}

func abmRuleLine(addr, direction string) string {
	return fmt.Sprintf("<br/>ABM rule: <b>%s/%s (%s)</b>", addr, addr, direction)
}

func trafficLine(tx, rx string) string {
	return fmt.Sprintf("<br/>Traffic: <b>%s TX / %s RX</b>", tx, rx)
}
