/*
Package recpm defines the common interfaces that tie the ledger together:
stores, transactions, messages, handlers and the context values every call
carries (block height, block time, chain id, signer conditions).

The hosting environment totally orders calls and supplies the identity of
the caller as well as the current height and timestamp. Extensions under x/
implement the actual state transitions and only ever see these interfaces.

There exist two functions for every value of type T carried in a Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/
package recpm
