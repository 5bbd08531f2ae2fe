package cli

const msgWelcome = `Vocab bot — vocabulary practice in your terminal.`

const msgMenu = `
[q] take a quiz
[s] search a word
[w] word of the day
[l] learning list
[r] review words
[d] dashboard
[o] log out
[x] exit`

const msgLoginFirst = `Please log in first.`

const msgSessionExpired = `Session expired. Please log in again.`

const msgQuizLoadFailed = `Could not load quiz questions. Try again later.`

const msgAttemptNotSaved = `Your score could not be saved, but here it is anyway:`

const msgQuizRetake = `Take the quiz again? [y/n]`
