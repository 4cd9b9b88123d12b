/*
Package cash implements the native settlement currency of the
application.

There is no logic in the currency, except that the balance of any
wallet may not go below zero and may not overflow. Balances are plain
unsigned integers of native units. Thus, this implementation is
referred to as cash. Simple and safe.

Other extensions move funds through the Controller, users through the
cash/send message.
*/
package cash
