/*
Package cash defines a simple implementation of sending coins between
wallets.

There is no logic in the coins, except that the balance of any coin may
not go below zero. Other extensions build on top of the Controller
interface to settle multi-leg payments atomically.
*/
package cash
