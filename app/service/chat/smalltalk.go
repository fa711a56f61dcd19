package chat

import (
	"context"
	"time"
)

var greetingKeywords = []string{"hello", "hi", "hey", "greetings", "good morning", "good evening"}

var jokes = []string{
	"Why don't programmers like nature? Too many bugs!",
	"Why did the function break up with the loop? It was stuck in a cycle.",
	"Why do Go programmers never get lonely? They always have a goroutine to talk to.",
}

func Jokes() []string {
	return append([]string(nil), jokes...)
}

func (s *Service) handleExit(context.Context, *Turn) Reply {
	return Reply{Lines: []string{"Goodbye!"}, Exit: true}
}

func (s *Service) handleGreeting(context.Context, *Turn) Reply {
	return say("Hello there! How can I help you?")
}

func (s *Service) handleBotName(context.Context, *Turn) Reply {
	return say("I'm a simple chatbot")
}

func (s *Service) handleHowAreYou(context.Context, *Turn) Reply {
	return say("I'm just a bunch of code, but I'm doing great! And you?")
}

func (s *Service) handleTime(context.Context, *Turn) Reply {
	return say("The current time is " + s.opts.Now().Format(time.TimeOnly))
}

func (s *Service) handleDate(context.Context, *Turn) Reply {
	return say("Today's date is " + s.opts.Now().Format(time.DateOnly))
}

func (s *Service) handleJoke(context.Context, *Turn) Reply {
	return say(jokes[s.opts.Pick(len(jokes))])
}

func (s *Service) handleFallback(context.Context, *Turn) Reply {
	return say("I'm not sure how to respond. You can teach me using 'add: question = answer'.")
}
