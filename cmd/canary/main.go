// Command canary scans source trees for hard-coded secrets and reports them
// with confidence tiers, entropy filtering, and masked previews.
package main

func main() {
	Execute()
}
